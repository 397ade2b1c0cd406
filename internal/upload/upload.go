// Package upload reads the plain text documents of an analysis request.
package upload

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
)

const (
	FieldResume         = "resume"
	FieldJobDescription = "job_description"

	TextExtension = ".txt"
	TextMIME      = "text/plain"

	// multipart framing allowance on top of the two files
	formOverheadBytes = 1 << 20
)

var (
	ErrNotText         = errors.New("only .txt files are accepted")
	ErrTooLarge        = errors.New("file exceeds the maximum upload size")
	ErrInvalidEncoding = errors.New("invalid UTF-8")
	ErrUnsupportedType = errors.New("file content is not plain text")
	ErrMalformedForm   = errors.New("malformed multipart form")
)

// Documents holds the uploaded texts. Missing lists the fields that were not uploaded.
type Documents struct {
	Resume         string
	JobDescription string
	Missing        []string
}

// Ready reports whether both documents were uploaded.
func (d Documents) Ready() bool {
	return len(d.Missing) == 0
}

// Reader validates and decodes uploaded text files.
type Reader struct {
	maxFileBytes int64
}

func NewReader(maxFileBytes int64) *Reader {
	return &Reader{maxFileBytes: maxFileBytes}
}

// Read parses the multipart body of r and returns both documents.
// A field that was not uploaded is reported in Documents.Missing, not as an error.
func (u *Reader) Read(w http.ResponseWriter, r *http.Request) (Documents, error) {
	r.Body = http.MaxBytesReader(w, r.Body, 2*u.maxFileBytes+formOverheadBytes)
	if err := r.ParseMultipartForm(2 * u.maxFileBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return Documents{}, ErrTooLarge
		}
		return Documents{}, fmt.Errorf("%w: %w", ErrMalformedForm, err)
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	var docs Documents
	targets := []struct {
		field string
		text  *string
	}{
		{FieldResume, &docs.Resume},
		{FieldJobDescription, &docs.JobDescription},
	}
	for _, target := range targets {
		text, present, err := u.readField(r, target.field)
		if err != nil {
			return Documents{}, fmt.Errorf("%s: %w", target.field, err)
		}
		if !present {
			docs.Missing = append(docs.Missing, target.field)
			continue
		}
		*target.text = text
	}
	return docs, nil
}

func (u *Reader) readField(r *http.Request, field string) (string, bool, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	defer func() { _ = file.Close() }()

	if !strings.EqualFold(filepath.Ext(header.Filename), TextExtension) {
		return "", false, ErrNotText
	}
	if header.Size > u.maxFileBytes {
		return "", false, ErrTooLarge
	}

	text, err := u.ReadText(file)
	if err != nil {
		return "", false, err
	}
	return text, true, nil
}

// ReadText reads at most the configured number of bytes from src and checks that
// they are UTF-8 encoded plain text.
func (u *Reader) ReadText(src io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(src, u.maxFileBytes+1))
	if err != nil {
		return "", err
	}
	if int64(len(data)) > u.maxFileBytes {
		return "", ErrTooLarge
	}
	if len(data) == 0 {
		return "", nil
	}
	if !utf8.Valid(data) {
		return "", ErrInvalidEncoding
	}
	if !isPlainText(data) {
		return "", ErrUnsupportedType
	}
	return string(data), nil
}

// isPlainText walks the detected type up to its root; text/plain anywhere in the
// chain (text/html, application/json, ...) counts as plain text.
func isPlainText(data []byte) bool {
	for mtype := mimetype.Detect(data); mtype != nil; mtype = mtype.Parent() {
		if mtype.Is(TextMIME) {
			return true
		}
	}
	return false
}
