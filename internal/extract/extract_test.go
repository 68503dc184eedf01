package extract

import (
	"errors"
	"testing"

	apperrors "github.com/ImamJamdar/CGPA/internal/errors"
)

func TestIsPDFFilename(t *testing.T) {
	t.Parallel()
	tests := []struct {
		filename string
		want     bool
	}{
		{"results.pdf", true},
		{"RESULTS.PDF", true},
		{"sem1.Pdf", true},
		{"archive.tar.pdf", true},
		{"results.txt", false},
		{"results.pdf.exe", false},
		{"pdf", false},
		{"", false},
		{".pdf", true},
	}

	for _, tt := range tests {
		if got := IsPDFFilename(tt.filename); got != tt.want {
			t.Errorf("IsPDFFilename(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestTextRejectsGarbage(t *testing.T) {
	t.Parallel()
	_, _, err := Text("results.pdf", []byte("this is not a pdf at all"))
	if err == nil {
		t.Fatal("expected an error for non-PDF bytes")
	}

	var extractionErr *apperrors.ExtractionError
	if !errors.As(err, &extractionErr) {
		t.Fatalf("error %T is not an ExtractionError", err)
	}
	if extractionErr.Filename != "results.pdf" {
		t.Errorf("filename = %q, want results.pdf", extractionErr.Filename)
	}
}

func TestTextRejectsEmptyInput(t *testing.T) {
	t.Parallel()
	_, _, err := Text("empty.pdf", nil)
	if err == nil {
		t.Fatal("expected an error for empty input")
	}

	var extractionErr *apperrors.ExtractionError
	if !errors.As(err, &extractionErr) {
		t.Fatalf("error %T is not an ExtractionError", err)
	}
}
