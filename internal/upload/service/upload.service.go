package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"notesapi/internal/upload/storage"
	"notesapi/pkg/apperror"
)

var allowedImageTypes = map[string]bool{
	"image/apng": true,
	"image/avif": true,
	"image/gif":  true,
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

type UploadService struct {
	Storage storage.Storage
	Now     func() time.Time
}

func NewUploadService(s storage.Storage) *UploadService {
	return &UploadService{Storage: s, Now: time.Now}
}

// SaveImage stores r as <unix-millis><filename> and returns its public location.
func (s *UploadService) SaveImage(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	if !allowedImageTypes[strings.ToLower(contentType)] {
		return "", apperror.Validation(fmt.Sprintf("unsupported content type %q", contentType))
	}
	name := fmt.Sprintf("%d%s", s.Now().UnixMilli(), cleanName(filename))
	return s.Storage.Save(ctx, name, contentType, r)
}

func cleanName(filename string) string {
	name := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	return name
}
