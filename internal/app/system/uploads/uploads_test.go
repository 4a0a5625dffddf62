// internal/app/system/uploads/uploads_test.go
package uploads

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/dalemusser/waffle/pantry/storage"

	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/apierr"
)

func newLocalStore(t *testing.T) storage.Store {
	t.Helper()
	store, err := storage.NewLocal(storage.LocalConfig{
		BasePath: t.TempDir(),
		BaseURL:  "http://localhost:8080/uploads",
	})
	if err != nil {
		t.Fatalf("create local store: %v", err)
	}
	return store
}

func TestSaveGeneratesDatedUniquePath(t *testing.T) {
	store := newLocalStore(t)

	res, err := Save(context.Background(), store, "blogs", "cover photo.jpg", strings.NewReader("data"), 4, "image/jpeg")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if !strings.HasPrefix(res.Path, "blogs/") {
		t.Errorf("path %q should start with kind prefix", res.Path)
	}
	if !strings.HasSuffix(res.Path, "-cover_photo.jpg") {
		t.Errorf("path %q should end with sanitized filename", res.Path)
	}
	if !strings.HasPrefix(res.URL, "http://localhost:8080/uploads/") {
		t.Errorf("URL %q should use store base URL", res.URL)
	}

	res2, err := Save(context.Background(), store, "blogs", "cover photo.jpg", strings.NewReader("data"), 4, "image/jpeg")
	if err != nil {
		t.Fatalf("Save second: %v", err)
	}
	if res2.Path == res.Path {
		t.Error("two uploads of the same filename should get distinct paths")
	}
}

func multipartRequest(t *testing.T, field, filename, contentType string, body []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(body); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	r := httptest.NewRequest("POST", "/", &buf)
	r.Header.Set("Content-Type", w.FormDataContentType())
	return r
}

func TestSaveImageAcceptsJPEG(t *testing.T) {
	store := newLocalStore(t)
	r := multipartRequest(t, "image", "photo.jpg", "image/jpeg", []byte("jpegdata"))

	res, ok, err := SaveImage(context.Background(), store, r, "image", "banners")
	if err != nil {
		t.Fatalf("SaveImage: %v", err)
	}
	if !ok {
		t.Fatal("SaveImage should report a file was present")
	}
	if !strings.HasPrefix(res.Path, "banners/") {
		t.Errorf("path %q should start with banners/", res.Path)
	}
}

func TestSaveImageRejectsWrongType(t *testing.T) {
	store := newLocalStore(t)
	r := multipartRequest(t, "image", "notes.txt", "text/plain", []byte("hello"))

	_, _, err := SaveImage(context.Background(), store, r, "image", "banners")
	if err == nil {
		t.Fatal("expected validation error for text/plain")
	}
	if apierr.KindOf(err) != apierr.ValidationFailed {
		t.Errorf("kind = %v, want validation_failed", apierr.KindOf(err))
	}
}

func TestSaveImageMissingFieldIsOptional(t *testing.T) {
	store := newLocalStore(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.WriteField("title", "no file here")
	_ = w.Close()

	r := httptest.NewRequest("POST", "/", &buf)
	r.Header.Set("Content-Type", w.FormDataContentType())

	_, ok, err := SaveImage(context.Background(), store, r, "image", "banners")
	if err != nil {
		t.Fatalf("SaveImage: %v", err)
	}
	if ok {
		t.Fatal("SaveImage should report no file present")
	}
}

func TestSaveDocumentAcceptsPDF(t *testing.T) {
	store := newLocalStore(t)
	r := multipartRequest(t, "resume", "resume.pdf", "application/pdf", []byte("%PDF-1.4"))

	res, ok, err := SaveDocument(context.Background(), store, r, "resume", "resumes")
	if err != nil {
		t.Fatalf("SaveDocument: %v", err)
	}
	if !ok {
		t.Fatal("SaveDocument should report a file was present")
	}
	if !strings.HasSuffix(res.Path, "-resume.pdf") {
		t.Errorf("path %q should keep sanitized filename", res.Path)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"photo.jpg", "photo.jpg"},
		{"my photo.jpg", "my_photo.jpg"},
		{"../../etc/passwd", "passwd"},
		{"", "file"},
		{"résumé.pdf", "r__sum__.pdf"},
	}
	for _, tc := range tests {
		if got := sanitizeFilename(tc.in); got != tc.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
