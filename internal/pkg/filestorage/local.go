package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/campuslink/jobportal/internal/pkg/logger"
)

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string // The root directory where files are stored
	baseURL  string // The base URL under which stored files are served
}

// NewLocalStorage creates a new LocalStorage instance. basePath is the
// directory on disk; baseURL is prepended to returned file paths.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// SaveFileWithPath saves a file to a subdirectory and returns its public URL
func (ls *LocalStorage) SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	if fileHeader == nil {
		return "", nil // No file uploaded
	}

	dstPath, uniqueFilename, err := ls.write(fileHeader, subPath)
	if err != nil {
		return "", err
	}

	var accessiblePath string
	if subPath != "" {
		accessiblePath = ls.baseURL + "/" + subPath + "/" + uniqueFilename
	} else {
		accessiblePath = ls.baseURL + "/" + uniqueFilename
	}

	logger.Info().Str("filename", fileHeader.Filename).Str("saved_as", dstPath).Str("accessible_path", accessiblePath).Msg("File saved")
	return accessiblePath, nil
}

// SaveFile saves an uploaded file into the storage root
func (ls *LocalStorage) SaveFile(fileHeader *multipart.FileHeader) (string, error) {
	return ls.SaveFileWithPath(fileHeader, "")
}

// SaveTempFile saves an uploaded file into the temp area and returns the
// filesystem path. Bulk importers read and then remove the file themselves.
func (ls *LocalStorage) SaveTempFile(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil {
		return "", fmt.Errorf("no file provided")
	}
	dstPath, _, err := ls.write(fileHeader, KindTemp)
	if err != nil {
		return "", err
	}
	return dstPath, nil
}

// write copies the upload onto disk under a uuid filename and returns the
// destination path and the generated filename.
func (ls *LocalStorage) write(fileHeader *multipart.FileHeader, subPath string) (string, string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	fullDirPath := ls.basePath
	if subPath != "" {
		fullDirPath = filepath.Join(ls.basePath, subPath)
		if err := os.MkdirAll(fullDirPath, os.ModePerm); err != nil {
			logger.Error().Err(err).Str("path", fullDirPath).Msg("Failed to create subdirectory")
			return "", "", fmt.Errorf("failed to create subdirectory: %w", err)
		}
	}

	ext := filepath.Ext(fileHeader.Filename)
	uniqueFilename := uuid.New().String() + ext
	dstPath := filepath.Join(fullDirPath, uniqueFilename)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return "", "", fmt.Errorf("failed to save file content: %w", err)
	}

	return dstPath, uniqueFilename, nil
}

// DeleteFile removes a file from storage given its public URL or relative
// path. Returns nil if the file is already gone (idempotent delete).
func (ls *LocalStorage) DeleteFile(filePath string) error {
	if filePath == "" {
		return nil // Nothing to delete
	}

	// Strip the base URL so subdirectory structure survives
	rel := filePath
	if ls.baseURL != "" && strings.HasPrefix(rel, ls.baseURL) {
		rel = strings.TrimPrefix(rel, ls.baseURL)
	}
	rel = strings.TrimLeft(rel, "/")

	// Refuse anything that would escape the storage root
	rel = filepath.Clean(rel)
	if rel == "." || rel == "" || strings.HasPrefix(rel, "..") {
		return fmt.Errorf("invalid file path: %s", filePath)
	}

	physicalPath := filepath.Join(ls.basePath, rel)

	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted")
	return nil
}
