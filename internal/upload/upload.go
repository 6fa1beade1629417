// Package upload validates and stores the registration documents. Rejections
// happen before any state mutation or storage call.
package upload

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// MaxDocumentSize is the largest accepted document upload.
const MaxDocumentSize = 8 << 20 // 8 MB

var (
	ErrTooLarge    = errors.New("document exceeds the size limit")
	ErrNotPDF      = errors.New("only PDF documents are accepted")
	ErrNotImage    = errors.New("logo must be an image")
	ErrUnknownKind = errors.New("unknown document kind")
)

// DocumentKinds are the document boxes on the registration form.
var DocumentKinds = []string{
	"dni",
	"camara_comercio",
	"rut",
	"certificacion_bancaria",
	"estados_financieros",
	"composicion_accionaria",
}

// KnownKind reports whether kind is one of the registration document boxes.
func KnownKind(kind string) bool {
	for _, k := range DocumentKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// ValidateDocument checks a document upload. Size is checked before mime
// type, so an oversized PDF reports the size problem.
func ValidateDocument(contentType string, size int64) error {
	if size > MaxDocumentSize {
		return ErrTooLarge
	}
	if !strings.Contains(strings.ToLower(contentType), "pdf") {
		return ErrNotPDF
	}
	return nil
}

// ValidateLogo checks a company logo upload. Any image mime type is
// accepted, with no size cap.
func ValidateLogo(contentType string) error {
	if !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return ErrNotImage
	}
	return nil
}

// Storage persists accepted uploads.
type Storage interface {
	Upload(key, contentType string, data []byte) error
}

// Service validates uploads and writes the accepted ones to storage, keyed
// by session and document kind.
type Service struct {
	storage Storage
	logger  *zap.Logger
}

// NewService builds the upload service. storage may be nil, in which case
// accepted files are validated but not persisted.
func NewService(storage Storage, logger *zap.Logger) *Service {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	return &Service{storage: storage, logger: logger.With(zap.String("component", "upload"))}
}

// StoreLogo validates and stores a logo, returning the object key.
func (s *Service) StoreLogo(sessionID, filename, contentType string, data []byte) (string, error) {
	if err := ValidateLogo(contentType); err != nil {
		return "", err
	}
	key := fmt.Sprintf("%s/logo/%s", sessionID, filename)
	if err := s.store(key, contentType, data); err != nil {
		return "", err
	}
	return key, nil
}

// StoreDocument validates and stores a PDF document, returning the object key.
func (s *Service) StoreDocument(sessionID, kind, filename, contentType string, data []byte) (string, error) {
	if !KnownKind(kind) {
		return "", ErrUnknownKind
	}
	if err := ValidateDocument(contentType, int64(len(data))); err != nil {
		return "", err
	}
	key := fmt.Sprintf("%s/%s/%s", sessionID, kind, filename)
	if err := s.store(key, contentType, data); err != nil {
		return "", err
	}
	return key, nil
}

func (s *Service) store(key, contentType string, data []byte) error {
	if s.storage == nil {
		s.logger.Warn("no storage configured, upload accepted but not persisted", zap.String("key", key))
		return nil
	}
	if err := s.storage.Upload(key, contentType, data); err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	s.logger.Info("stored upload", zap.String("key", key), zap.Int("bytes", len(data)))
	return nil
}
