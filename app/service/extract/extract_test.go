package extract

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"

	"oscesim/app/util/apperr"
)

func TestTypeFromName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"case.pdf", TypePDF},
		{"Case.PDF", TypePDF},
		{"case.docx", TypeDocx},
		{"notes.txt", TypeText},
		{"image.png", ""},
		{"noext", ""},
	}

	for _, tt := range tests {
		if got := TypeFromName(tt.name); got != tt.want {
			t.Errorf("TypeFromName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestText_PlainText(t *testing.T) {
	got, err := Text([]byte("Chief Complaint: cough"), TypeText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Chief Complaint: cough" {
		t.Errorf("unexpected text %q", got)
	}
}

func TestText_UnsupportedType(t *testing.T) {
	_, err := Text([]byte("data"), "rtf")
	if !errors.Is(err, apperr.ErrDocumentUnreadable) {
		t.Fatalf("expected ErrDocumentUnreadable, got %v", err)
	}
}

func TestText_EmptyDocument(t *testing.T) {
	_, err := Text([]byte("   \n\t"), TypeText)
	if !errors.Is(err, apperr.ErrDocumentUnreadable) {
		t.Fatalf("expected ErrDocumentUnreadable, got %v", err)
	}
}

func TestText_Docx(t *testing.T) {
	document := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Patient Name: John Carter</w:t></w:r></w:p>
    <w:p><w:r><w:t>Age: 61</w:t></w:r></w:p>
  </w:body>
</w:document>`

	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)

	f, err := writer.Create("word/document.xml")
	if err != nil {
		t.Fatalf("failed to create zip entry: %v", err)
	}
	if _, err = f.Write([]byte(document)); err != nil {
		t.Fatalf("failed to write zip entry: %v", err)
	}
	if err = writer.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}

	got, err := Text(buf.Bytes(), TypeDocx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(got, "Patient Name: John Carter") {
		t.Errorf("missing first paragraph in %q", got)
	}
	if !strings.Contains(got, "Age: 61") {
		t.Errorf("missing second paragraph in %q", got)
	}

	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) < 2 {
		t.Errorf("paragraphs must be newline separated, got %q", got)
	}
}

func TestText_DocxWithoutDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	if _, err := writer.Create("word/other.xml"); err != nil {
		t.Fatalf("failed to create zip entry: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}

	_, err := Text(buf.Bytes(), TypeDocx)
	if !errors.Is(err, apperr.ErrDocumentUnreadable) {
		t.Fatalf("expected ErrDocumentUnreadable, got %v", err)
	}
}

func TestText_CorruptPDF(t *testing.T) {
	_, err := Text([]byte("definitely not a pdf"), TypePDF)
	if !errors.Is(err, apperr.ErrDocumentUnreadable) {
		t.Fatalf("expected ErrDocumentUnreadable, got %v", err)
	}
}
