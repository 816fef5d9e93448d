package extract

import (
	"context"
	"io"
)

// TextExtractor handles plain text files. The content is returned
// verbatim; question text is stored exactly as uploaded.
type TextExtractor struct{}

func (e *TextExtractor) Extract(ctx context.Context, r io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
