package source

import (
	"context"
	"fmt"
	"os"
)

// FileSource reads the document from a JSON file on disk.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return "file" }

func (s FileSource) Load(_ context.Context) (*Document, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("file source: %w", err)
	}
	doc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("file source %s: %w", s.Path, err)
	}
	return doc, nil
}
