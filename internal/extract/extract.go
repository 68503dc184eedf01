// Package extract turns uploaded PDF byte streams into plain text.
// Only the embedded text layer is read; scanned (image-only) PDFs require
// OCR and are not handled here.
package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	apperrors "github.com/ImamJamdar/CGPA/internal/errors"
)

// Text extracts the plain text of a PDF, pages concatenated with newline
// separators. Returns the page count alongside the text. Unreadable
// documents yield an ExtractionError.
func Text(filename string, data []byte) (text string, pages int, err error) {
	// The pdf library panics on some malformed cross-reference tables;
	// an unreadable upload must surface as an error, not a crash.
	defer func() {
		if r := recover(); r != nil {
			text, pages = "", 0
			err = apperrors.NewExtractionError(filename, fmt.Errorf("malformed document: %v", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, apperrors.NewExtractionError(filename, err)
	}

	numPages := reader.NumPage()
	fonts := make(map[string]*pdf.Font)
	var parts []string

	for i := 1; i <= numPages; i++ {
		p := reader.Page(i)
		if p.V.IsNull() {
			continue
		}

		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				f := p.Font(name)
				fonts[name] = &f
			}
		}

		pageText, pageErr := p.GetPlainText(fonts)
		if pageErr != nil {
			return "", 0, apperrors.NewExtractionError(filename, fmt.Errorf("page %d: %w", i, pageErr))
		}
		parts = append(parts, pageText)
		pages++
	}

	return strings.Join(parts, "\n"), pages, nil
}

// IsPDFFilename checks if the provided filename has a .pdf extension
// (case-insensitive).
func IsPDFFilename(filename string) bool {
	dot := strings.LastIndex(filename, ".")
	if dot < 0 {
		return false
	}
	return strings.EqualFold(filename[dot:], ".pdf")
}
