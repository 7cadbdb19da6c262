// Package ocr is the document-scanning boundary. Extraction runs behind the
// Provider interface so the HTTP layer and the form-prefill contract do not
// depend on any particular OCR backend.
package ocr

import (
	"context"
	"io"
)

// ScanResult carries the fields an OCR pass may recover from a document
// photo. Every field is optional; the operator reviews and corrects the
// prefill before saving.
type ScanResult struct {
	DocumentType string  `json:"document_type,omitempty"`
	Number       *string `json:"number,omitempty"`
	NameEN       *string `json:"name_en,omitempty"`
	NameAR       *string `json:"name_ar,omitempty"`
	Nationality  *string `json:"nationality,omitempty"`
	ExpiryDate   *string `json:"expiry_date,omitempty"`
	// Confidence is the backend's own 0..1 estimate, -1 when unknown.
	Confidence float64 `json:"confidence"`
}

// Provider extracts structured fields from a scanned document image.
type Provider interface {
	Scan(ctx context.Context, image io.Reader, filename string) (*ScanResult, error)
}
