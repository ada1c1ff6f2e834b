package filestorage

import (
	"context"
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"
)

var (
	// ErrUnsupportedType is returned for uploads that are not images
	ErrUnsupportedType = errors.New("unsupported file type")
	// ErrFileTooLarge is returned when an upload exceeds the configured limit
	ErrFileTooLarge = errors.New("file too large")
)

// allowedExtensions maps accepted photo extensions to their content type
var allowedExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// FileStorage defines the interface for photo storage operations
type FileStorage interface {
	// SaveFileWithPath stores the upload under subPath and returns its public URL
	SaveFileWithPath(ctx context.Context, fileHeader *multipart.FileHeader, subPath string) (string, error)

	// DeleteFile removes a file previously returned by SaveFileWithPath.
	// Missing files are not an error.
	DeleteFile(ctx context.Context, fileURL string) error
}

// checkUpload validates size and extension and returns the content type
func checkUpload(fileHeader *multipart.FileHeader, maxBytes int64) (string, error) {
	if maxBytes > 0 && fileHeader.Size > maxBytes {
		return "", ErrFileTooLarge
	}
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	contentType, ok := allowedExtensions[ext]
	if !ok {
		return "", ErrUnsupportedType
	}
	return contentType, nil
}

// joinURL joins URL segments with single slashes, skipping empty ones
func joinURL(parts ...string) string {
	var out []string
	for i, p := range parts {
		if i == 0 {
			p = strings.TrimRight(p, "/")
		} else {
			p = strings.Trim(p, "/")
		}
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "/")
}
