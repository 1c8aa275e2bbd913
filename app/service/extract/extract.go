package extract

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"oscesim/app/util/apperr"

	"github.com/ledongthuc/pdf"
)

// Supported declared document types.
const (
	TypePDF  = "pdf"
	TypeDocx = "docx"
	TypeText = "txt"
)

// TypeFromName guesses the declared type from a file name extension.
// Unknown extensions return an empty string.
func TypeFromName(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return TypePDF
	case ".docx":
		return TypeDocx
	case ".txt":
		return TypeText
	default:
		return ""
	}
}

// Text extracts plain text from a case document. An unsupported type or a
// document that yields no text at all is reported as unreadable rather than
// silently producing an empty case.
func Text(data []byte, declaredType string) (string, error) {
	var (
		text string
		err  error
	)

	switch declaredType {
	case TypePDF:
		text, err = pdfText(data)
	case TypeDocx:
		text, err = docxText(data)
	case TypeText:
		text = string(data)
	default:
		return "", fmt.Errorf("%w: unsupported document type %q", apperr.ErrDocumentUnreadable, declaredType)
	}

	if err != nil {
		return "", fmt.Errorf("%w: %v", apperr.ErrDocumentUnreadable, err)
	}

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: document contains no text", apperr.ErrDocumentUnreadable)
	}

	return text, nil
}

func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err = buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}

	return buf.String(), nil
}
