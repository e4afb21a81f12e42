package resume

import (
	"bytes"
	"errors"

	"github.com/ledongthuc/pdf"
)

// MimePDF is the only MIME type accepted for resume uploads.
const MimePDF = "application/pdf"

var ErrNotPDF = errors.New("please upload a valid PDF file")

// ValidatePDF rejects payloads that are not structurally valid PDFs.
// It runs before Save, so nothing is cached for an invalid upload.
func ValidatePDF(data []byte) error {
	if len(data) < 5 || !bytes.HasPrefix(data, []byte("%PDF-")) {
		return ErrNotPDF
	}
	if _, err := pdf.NewReader(bytes.NewReader(data), int64(len(data))); err != nil {
		return ErrNotPDF
	}
	return nil
}
