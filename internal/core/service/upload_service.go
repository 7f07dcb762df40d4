package service

import (
	"context"
	"mime/multipart"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/devboard/devboard-api/internal/core/domain"
	"github.com/devboard/devboard-api/internal/core/ports"
)

const (
	// MaxFileSize is the per-file upload ceiling (5 MiB).
	MaxFileSize = 5 << 20
	// MaxFilesPerUpload bounds a single multi-upload request.
	MaxFilesPerUpload = 5
)

// allowedImageTypes is the declared content-type allow-list for uploads.
var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

// safeFilename matches stored filenames: no separators, no traversal tokens.
var safeFilename = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// UploadService validates incoming attachments and hands them to the binary
// store under generated filenames.
type UploadService struct {
	store ports.BinaryStore
	log   zerolog.Logger
}

func NewUploadService(store ports.BinaryStore, log zerolog.Logger) *UploadService {
	return &UploadService{store: store, log: log}
}

func (s *UploadService) Store(ctx context.Context, file *multipart.FileHeader) (*ports.UploadResult, error) {
	if err := validateFile(file); err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	// The stored base name is unrelated to the original to prevent path and
	// identity leakage; only the extension survives.
	name, err := s.freeName(ctx, strings.ToLower(filepath.Ext(file.Filename)))
	if err != nil {
		return nil, err
	}
	size, err := s.store.Save(ctx, name, src)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("filename", name).Int64("size", size).Msg("file stored")
	return &ports.UploadResult{
		Filename:    name,
		Path:        "/uploads/" + name,
		ContentType: file.Header.Get("Content-Type"),
		Size:        size,
	}, nil
}

func (s *UploadService) StoreAll(ctx context.Context, files []*multipart.FileHeader) ([]*ports.UploadResult, error) {
	if len(files) == 0 {
		return nil, domain.NewUploadError("no files provided")
	}
	if len(files) > MaxFilesPerUpload {
		return nil, domain.NewUploadError("too many files: at most %d per request", MaxFilesPerUpload)
	}

	// Validate the whole batch before writing anything.
	for _, f := range files {
		if err := validateFile(f); err != nil {
			return nil, err
		}
	}

	results := make([]*ports.UploadResult, 0, len(files))
	for _, f := range files {
		res, err := s.Store(ctx, f)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// freeName generates a stored filename that is not already taken. UUID
// collisions are not a practical concern, but the store is shared state and
// overwriting an existing file must never happen silently.
func (s *UploadService) freeName(ctx context.Context, ext string) (string, error) {
	for attempt := 0; attempt < 3; attempt++ {
		name := uuid.NewString() + ext
		taken, err := s.store.Exists(ctx, name)
		if err != nil {
			return "", err
		}
		if !taken {
			return name, nil
		}
	}
	return "", domain.NewUploadError("could not allocate a filename")
}

// Remove deletes a stored file by name. The filename is checked against a
// strict allow-list before any storage call, so traversal attempts never
// reach the filesystem.
func (s *UploadService) Remove(ctx context.Context, filename string) error {
	if filename == "" || strings.Contains(filename, "..") ||
		strings.ContainsAny(filename, `/\`) || !safeFilename.MatchString(filename) {
		return domain.NewUploadError("invalid filename")
	}
	return s.store.Delete(ctx, filename)
}

func validateFile(file *multipart.FileHeader) error {
	if file.Size > MaxFileSize {
		return domain.NewUploadError("file %q exceeds the %d MiB limit", file.Filename, MaxFileSize>>20)
	}
	ct := strings.ToLower(strings.TrimSpace(file.Header.Get("Content-Type")))
	if _, ok := allowedImageTypes[ct]; !ok {
		return domain.NewUploadError("unsupported file type %q: only images are accepted", ct)
	}
	return nil
}
