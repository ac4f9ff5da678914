package filestorage

import (
	"mime/multipart"
)

// Upload kind subdirectories.
const (
	KindProfileImage = "profile-images"
	KindResume       = "resumes"
	KindCertificate  = "certificates"
	KindLogo         = "logos"
	KindTemp         = "tmp"
)

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveFile saves a file into the storage root and returns its public URL
	SaveFile(fileHeader *multipart.FileHeader) (string, error)

	// SaveFileWithPath saves a file into a subdirectory of the storage root
	SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error)

	// SaveTempFile saves a file into the temp area and returns its filesystem path
	SaveTempFile(fileHeader *multipart.FileHeader) (string, error)

	// DeleteFile removes a stored file given its public URL or relative path
	DeleteFile(filePath string) error
}
