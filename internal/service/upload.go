package service

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Sentinel errors for uploads.
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
	ErrFileEmpty           = errors.New("file is empty")
)

// UploadPolicy bounds one upload endpoint: a size ceiling and a MIME allow-list.
// Types maps each allowed MIME type to a label (extension or material type).
// A nil Types accepts any MIME type.
type UploadPolicy struct {
	MaxBytes int64
	Types    map[string]string
}

const mb = 1024 * 1024

// Upload policies per endpoint.
var (
	MaterialUploads = UploadPolicy{
		MaxBytes: 100 * mb,
		Types: map[string]string{
			"video/mp4":                     "video",
			"video/avi":                     "video",
			"video/mov":                     "video",
			"video/quicktime":               "video",
			"video/wmv":                     "video",
			"application/pdf":               "pdf",
			"application/vnd.ms-powerpoint": "slides",
			"application/vnd.openxmlformats-officedocument.presentationml.presentation": "slides",
		},
	}

	DocumentUploads = UploadPolicy{
		MaxBytes: 10 * mb,
		Types: map[string]string{
			"text/plain":         ".txt",
			"application/pdf":    ".pdf",
			"application/msword": ".doc",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
		},
	}

	// ResumeUploads accepts anything up to 10MB; extraction decides what is readable.
	ResumeUploads = UploadPolicy{MaxBytes: 10 * mb}

	InterviewResumeUploads = UploadPolicy{
		MaxBytes: 5 * mb,
		Types:    DocumentUploads.Types,
	}
)

// Check validates the header against the policy and returns the label for its MIME type.
func (p UploadPolicy) Check(header *multipart.FileHeader) (string, error) {
	contentType := header.Header.Get("Content-Type")
	label, ok := p.Types[contentType]
	if p.Types != nil && !ok {
		return "", fmt.Errorf("%w: %s (allowed: %s)",
			ErrUnsupportedFileType, contentType, strings.Join(p.allowed(), ", "))
	}
	if p.MaxBytes > 0 && header.Size > p.MaxBytes {
		return "", fmt.Errorf("%w: %d bytes (max: %d)", ErrFileTooLarge, header.Size, p.MaxBytes)
	}
	return label, nil
}

// Read validates the upload and loads it into memory.
func (p UploadPolicy) Read(file multipart.File, header *multipart.FileHeader) ([]byte, error) {
	if _, err := p.Check(header); err != nil {
		return nil, err
	}

	var r io.Reader = file
	if p.MaxBytes > 0 {
		r = io.LimitReader(file, p.MaxBytes+1)
	}

	var buf bytes.Buffer
	n, err := io.Copy(&buf, r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if p.MaxBytes > 0 && n > p.MaxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrFileTooLarge, p.MaxBytes)
	}
	if n == 0 {
		return nil, ErrFileEmpty
	}
	return buf.Bytes(), nil
}

// saveFile writes the upload to dir under a UUID name keeping the original
// extension and returns the destination path.
func saveFile(dir string, file multipart.File, header *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	destPath := filepath.Join(dir, uuid.New().String()+strings.ToLower(filepath.Ext(header.Filename)))

	dst, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		_ = os.Remove(destPath)
		return "", fmt.Errorf("write file: %w", err)
	}
	return destPath, nil
}

func (p UploadPolicy) allowed() []string {
	types := make([]string, 0, len(p.Types))
	for t := range p.Types {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
