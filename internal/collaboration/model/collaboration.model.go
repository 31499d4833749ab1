package model

type CollaborationRequest struct {
	NoteID string `json:"noteId" validate:"required"`
	UserID string `json:"userId" validate:"required"`
}

type CollaborationResponse struct {
	CollaborationID string `json:"collaborationId"`
}
