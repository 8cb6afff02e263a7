package identity

import "errors"

// Extraction itself never fails; these cover the service around it.
var (
	ErrEmptyText          = errors.New("ocr text is empty")
	ErrUnsupportedFormat  = errors.New("unsupported ocr format")
	ErrExtractionNotFound = errors.New("identity extraction not found")
	ErrInvalidCURP        = errors.New("invalid curp")
	ErrEncryptionRequired = errors.New("data encryption key not configured")
)
