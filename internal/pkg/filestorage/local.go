package filestorage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/yigit/hostelsphere/internal/pkg/logger"
)

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string // The root directory where files will be stored
	baseURL  string // URL prefix the directory is served under, e.g. /uploads
	maxBytes int64
}

// NewLocalStorage creates a new LocalStorage instance.
// basePath is the directory on the server, baseURL the prefix it is served under.
func NewLocalStorage(basePath, baseURL string, maxBytes int64) (*LocalStorage, error) {
	// Ensure the base path exists
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	if baseURL == "" {
		baseURL = "/uploads"
	}
	return &LocalStorage{
		basePath: basePath,
		baseURL:  baseURL,
		maxBytes: maxBytes,
	}, nil
}

// SaveFileWithPath saves a file to a specified subdirectory
func (ls *LocalStorage) SaveFileWithPath(ctx context.Context, fileHeader *multipart.FileHeader, subPath string) (string, error) {
	if fileHeader == nil {
		return "", nil // No file uploaded
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := checkUpload(fileHeader, ls.maxBytes); err != nil {
		return "", err
	}

	// Open the uploaded file
	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	subPath = filepath.Clean("/" + subPath)[1:]
	fullDirPath := filepath.Join(ls.basePath, subPath)
	if err := os.MkdirAll(fullDirPath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", fullDirPath).Msg("Failed to create subdirectory")
		return "", fmt.Errorf("failed to create subdirectory: %w", err)
	}

	// Generate a unique filename to prevent collisions
	uniqueFilename := uuid.New().String() + strings.ToLower(filepath.Ext(fileHeader.Filename))
	dstPath := filepath.Join(fullDirPath, uniqueFilename)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		// Attempt to remove the partially created file
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	accessiblePath := joinURL(ls.baseURL, filepath.ToSlash(subPath), uniqueFilename)
	logger.Info().Str("filename", fileHeader.Filename).Str("saved_as", uniqueFilename).Str("accessible_path", accessiblePath).Msg("File saved successfully")
	return accessiblePath, nil
}

// DeleteFile removes a file from the storage filesystem.
// It accepts the URL returned by SaveFileWithPath (e.g. /uploads/photos/x.jpg).
func (ls *LocalStorage) DeleteFile(ctx context.Context, fileURL string) error {
	if fileURL == "" {
		return nil // Nothing to delete
	}
	physicalPath := ls.GetFullPath(fileURL)
	if physicalPath == "" {
		return fmt.Errorf("invalid file path: %s", fileURL)
	}

	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted successfully")
	return nil
}

// GetFullPath maps a URL produced by this storage back to its path on disk.
// URLs outside baseURL yield "".
func (ls *LocalStorage) GetFullPath(fileURL string) string {
	prefix := strings.TrimRight(ls.baseURL, "/") + "/"
	if !strings.HasPrefix(fileURL, prefix) {
		return ""
	}
	rel := filepath.Clean("/" + strings.TrimPrefix(fileURL, prefix))[1:]
	if rel == "" || rel == "." {
		return ""
	}
	return filepath.Join(ls.basePath, filepath.FromSlash(rel))
}
