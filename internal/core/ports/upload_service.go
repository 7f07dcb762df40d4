package ports

import (
	"context"
	"mime/multipart"
)

// UploadResult describes one stored attachment. Path is the relative URL
// callers persist on their own records.
type UploadResult struct {
	Filename    string `json:"filename"`
	Path        string `json:"path"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// UploadService validates and stores incoming binary attachments.
// All rejections surface as *domain.UploadError with a user-facing message.
type UploadService interface {
	// Store validates and persists a single attachment under a generated
	// collision-resistant filename.
	Store(ctx context.Context, file *multipart.FileHeader) (*UploadResult, error)
	// StoreAll persists up to the configured maximum number of attachments.
	// Validation runs over the whole batch before anything is written.
	StoreAll(ctx context.Context, files []*multipart.FileHeader) ([]*UploadResult, error)
	// Remove deletes a stored attachment by filename, rejecting any
	// path-traversal attempt before touching storage.
	Remove(ctx context.Context, filename string) error
}
