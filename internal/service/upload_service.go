package service

import (
	"context"
	"errors"
	"io"

	"doc-chat-shell/internal/dto"
	"doc-chat-shell/internal/pkg/logger"
	"doc-chat-shell/pkg/chatbackend"
)

var (
	ErrUnsupportedFileType = errors.New("only PDF files are allowed")
	ErrFileTooLarge        = errors.New("file too large")
)

// UploadClient is the slice of the chat backend the upload flow needs.
type UploadClient interface {
	Upload(ctx context.Context, filename, contentType string, content io.Reader) (*chatbackend.UploadResult, error)
}

type IUploadService interface {
	// Upload rejects locally (type, size) before any bytes leave the shell,
	// then forwards the document to the chat backend for processing.
	Upload(ctx context.Context, filename, contentType string, size int64, content io.Reader) (*dto.UploadResponse, error)
}

type uploadService struct {
	client      UploadClient
	contentType string
	maxBytes    int64
	logger      logger.ILogger
}

func NewUploadService(client UploadClient, contentType string, maxBytes int64, log logger.ILogger) IUploadService {
	return &uploadService{
		client:      client,
		contentType: contentType,
		maxBytes:    maxBytes,
		logger:      log,
	}
}

func (s *uploadService) Upload(ctx context.Context, filename, contentType string, size int64, content io.Reader) (*dto.UploadResponse, error) {
	if contentType != s.contentType {
		return nil, ErrUnsupportedFileType
	}
	if size > s.maxBytes {
		return nil, ErrFileTooLarge
	}

	result, err := s.client.Upload(ctx, filename, contentType, content)
	if err != nil {
		s.logger.Error("UploadService", "Document upload failed", map[string]interface{}{
			"filename": filename,
			"error":    err.Error(),
		})
		return nil, err
	}

	s.logger.Info("UploadService", "Document uploaded", map[string]interface{}{
		"filename": result.Filename,
		"size":     result.Size,
		"chunks":   result.Chunks,
	})

	return &dto.UploadResponse{
		Message:  result.Message,
		Filename: result.Filename,
		Size:     result.Size,
		Chunks:   result.Chunks,
	}, nil
}
