package ocr

import (
	"context"
	"io"
	"net/http"

	apperrors "hr-system/pkg/errors"
)

// UnavailableProvider is the default backend: it reports that no OCR engine
// is configured. The endpoint and its contract stay stable while a real
// backend is absent.
type UnavailableProvider struct{}

func NewUnavailableProvider() Provider { return UnavailableProvider{} }

func (UnavailableProvider) Scan(ctx context.Context, image io.Reader, filename string) (*ScanResult, error) {
	return nil, apperrors.NewHttpError(http.StatusNotImplemented, "document scanning is not configured", nil)
}
