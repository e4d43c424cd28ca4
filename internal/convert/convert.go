package convert

import (
	"context"
	"errors"
	"io"
	"mime"
	"path/filepath"
	"strings"
)

var (
	// ErrUnsupportedType is returned when no converter handles the
	// uploaded content type.
	ErrUnsupportedType = errors.New("unsupported document type")
	// ErrEmptyDocument is returned when conversion yields no content.
	ErrEmptyDocument = errors.New("document has no extractable content")
)

// Converter turns a raw document stream into markdown plus structured content.
type Converter interface {
	Convert(ctx context.Context, r io.Reader) (*Result, error)
}

// ForDocument picks a converter based on the declared content type, falling
// back to the filename extension when the content type is generic.
func ForDocument(contentType, filename string) (Converter, error) {
	ct := contentType
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		ct = mt
	}

	switch ct {
	case "text/html", "application/xhtml+xml":
		return NewHTMLConverter(), nil
	case "application/pdf":
		return NewPDFConverter(), nil
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".html", ".htm":
		return NewHTMLConverter(), nil
	case ".pdf":
		return NewPDFConverter(), nil
	}

	return nil, ErrUnsupportedType
}
