package service

import (
	"context"
	"encoding/json"

	"notesapi/internal/export/model"
	"notesapi/pkg/logger"
)

type Producer interface {
	Send(ctx context.Context, queue string, message []byte) error
}

type ExportService struct {
	Producer Producer
	Queue    string
}

func NewExportService(producer Producer, queue string) *ExportService {
	return &ExportService{Producer: producer, Queue: queue}
}

// ExportNotes queues a job that mails userID's notes to targetEmail.
func (s *ExportService) ExportNotes(ctx context.Context, userID, targetEmail string) error {
	payload, err := json.Marshal(model.Message{UserID: userID, TargetEmail: targetEmail})
	if err != nil {
		return err
	}
	if err := s.Producer.Send(ctx, s.Queue, payload); err != nil {
		logger.Sugar.Errorf("Failed to queue notes export for user %s: %v", userID, err)
		return err
	}
	logger.Sugar.Infof("Queued notes export for user %s", userID)
	return nil
}
