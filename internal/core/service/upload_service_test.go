package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/devboard/devboard-api/internal/core/domain"
	"github.com/devboard/devboard-api/internal/core/ports"
)

type stubBinaryStore struct {
	saved   map[string][]byte
	deleted []string
}

func newStubBinaryStore() *stubBinaryStore {
	return &stubBinaryStore{saved: make(map[string][]byte)}
}

func (s *stubBinaryStore) Save(_ context.Context, filename string, content io.Reader) (int64, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return 0, err
	}
	s.saved[filename] = data
	return int64(len(data)), nil
}

func (s *stubBinaryStore) Exists(_ context.Context, filename string) (bool, error) {
	_, ok := s.saved[filename]
	return ok, nil
}

func (s *stubBinaryStore) Delete(_ context.Context, filename string) error {
	if _, ok := s.saved[filename]; !ok {
		return domain.ErrFileNotFound
	}
	delete(s.saved, filename)
	s.deleted = append(s.deleted, filename)
	return nil
}

// makeFileHeader builds a real *multipart.FileHeader by writing and re-parsing
// a multipart body, so Size and Open behave as they do in a live request.
func makeFileHeader(t *testing.T, filename, contentType string, size int) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(bytes.Repeat([]byte("x"), size)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

func newUploadService(store ports.BinaryStore) *UploadService {
	return NewUploadService(store, zerolog.Nop())
}

func TestUploadService_Store_Success(t *testing.T) {
	store := newStubBinaryStore()
	svc := newUploadService(store)

	res, err := svc.Store(context.Background(), makeFileHeader(t, "photo.PNG", "image/png", 1024))
	if err != nil {
		t.Fatalf("store failed: %v", err)
	}
	if res.Size != 1024 {
		t.Fatalf("size = %d, want 1024", res.Size)
	}
	if !strings.HasSuffix(res.Filename, ".png") {
		t.Fatalf("original extension should survive, lower-cased: %q", res.Filename)
	}
	if strings.Contains(res.Filename, "photo") {
		t.Fatalf("stored base name must be unrelated to the original: %q", res.Filename)
	}
	if res.Path != "/uploads/"+res.Filename {
		t.Fatalf("unexpected path: %q", res.Path)
	}
	if _, ok := store.saved[res.Filename]; !ok {
		t.Fatal("file not handed to the binary store")
	}
}

// fullStore reports every filename as taken.
type fullStore struct {
	*stubBinaryStore
}

func (s *fullStore) Exists(_ context.Context, _ string) (bool, error) {
	return true, nil
}

func TestUploadService_Store_NeverOverwrites(t *testing.T) {
	store := &fullStore{stubBinaryStore: newStubBinaryStore()}
	svc := newUploadService(store)

	_, err := svc.Store(context.Background(), makeFileHeader(t, "photo.png", "image/png", 64))
	var ue *domain.UploadError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UploadError when no free name exists, got %v", err)
	}
	if len(store.saved) != 0 {
		t.Fatal("nothing may be written over an existing file")
	}
}

func TestUploadService_Store_Oversized(t *testing.T) {
	svc := newUploadService(newStubBinaryStore())

	_, err := svc.Store(context.Background(), makeFileHeader(t, "big.jpg", "image/jpeg", 6<<20))
	var ue *domain.UploadError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UploadError, got %v", err)
	}
	if !strings.Contains(ue.Message, "5 MiB") {
		t.Fatalf("message should name the size limit: %q", ue.Message)
	}
}

func TestUploadService_Store_WrongType(t *testing.T) {
	svc := newUploadService(newStubBinaryStore())

	_, err := svc.Store(context.Background(), makeFileHeader(t, "report.pdf", "application/pdf", 100))
	var ue *domain.UploadError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UploadError, got %v", err)
	}
	if !strings.Contains(ue.Message, "type") {
		t.Fatalf("message should name the type problem: %q", ue.Message)
	}
}

func TestUploadService_StoreAll_TooMany(t *testing.T) {
	store := newStubBinaryStore()
	svc := newUploadService(store)

	files := make([]*multipart.FileHeader, MaxFilesPerUpload+1)
	for i := range files {
		files[i] = makeFileHeader(t, fmt.Sprintf("f%d.png", i), "image/png", 10)
	}

	_, err := svc.StoreAll(context.Background(), files)
	var ue *domain.UploadError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UploadError, got %v", err)
	}
	if len(store.saved) != 0 {
		t.Fatal("nothing should be written when the batch is rejected")
	}
}

func TestUploadService_StoreAll_RejectsBatchBeforeWriting(t *testing.T) {
	store := newStubBinaryStore()
	svc := newUploadService(store)

	files := []*multipart.FileHeader{
		makeFileHeader(t, "ok.png", "image/png", 10),
		makeFileHeader(t, "bad.txt", "text/plain", 10),
	}
	if _, err := svc.StoreAll(context.Background(), files); err == nil {
		t.Fatal("expected batch rejection")
	}
	if len(store.saved) != 0 {
		t.Fatal("validation must run over the whole batch before anything is written")
	}
}

func TestUploadService_Remove_PathTraversal(t *testing.T) {
	store := newStubBinaryStore()
	svc := newUploadService(store)

	for _, name := range []string{
		"../etc/passwd",
		"..",
		"a/../../b.png",
		`..\windows.png`,
		"dir/file.png",
		"",
		"null\x00byte.png",
	} {
		err := svc.Remove(context.Background(), name)
		var ue *domain.UploadError
		if !errors.As(err, &ue) {
			t.Errorf("Remove(%q): expected UploadError before touching storage, got %v", name, err)
		}
	}
	if len(store.deleted) != 0 {
		t.Fatal("storage was touched for an unsafe filename")
	}
}

func TestUploadService_Remove_Success(t *testing.T) {
	store := newStubBinaryStore()
	svc := newUploadService(store)

	res, err := svc.Store(context.Background(), makeFileHeader(t, "gone.gif", "image/gif", 5))
	if err != nil {
		t.Fatalf("store failed: %v", err)
	}
	if err := svc.Remove(context.Background(), res.Filename); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if err := svc.Remove(context.Background(), res.Filename); !errors.Is(err, domain.ErrFileNotFound) {
		t.Fatalf("second remove should be not-found, got %v", err)
	}
}
