package models

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
)

// Picture is a file selected for upload with a create or update request.
type Picture struct {
	FileName    string
	ContentType string
	Data        []byte
}

// LoadPicture reads a local image file. The content type is taken from the
// extension, falling back to sniffing the first bytes.
func LoadPicture(path string) (*Picture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read picture: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("picture %s is empty", path)
	}

	ct := mime.TypeByExtension(filepath.Ext(path))
	if ct == "" {
		ct = http.DetectContentType(data)
	}
	return &Picture{FileName: filepath.Base(path), ContentType: ct, Data: data}, nil
}

// ContactForm is the payload of a create or update submission. Picture is
// nil when no new file was selected.
type ContactForm struct {
	Name    string
	Address string
	Picture *Picture
}

// HasPicture reports whether a new file accompanies the form.
func (f ContactForm) HasPicture() bool {
	return f.Picture != nil && len(f.Picture.Data) > 0
}
