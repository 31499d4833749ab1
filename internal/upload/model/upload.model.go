package model

type UploadResponse struct {
	FileLocation string `json:"fileLocation"`
}
