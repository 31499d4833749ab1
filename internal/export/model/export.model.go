package model

type ExportRequest struct {
	TargetEmail string `json:"targetEmail" validate:"required,email"`
}

// Message is the queue payload consumed by the export worker.
type Message struct {
	UserID      string `json:"userId"`
	TargetEmail string `json:"targetEmail"`
}
