// internal/app/system/uploads/uploads.go
package uploads

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/google/uuid"

	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/apierr"
)

// MaxImageSize caps uploaded images at 5 MB.
const MaxImageSize = 5 << 20

// MaxDocumentSize caps uploaded documents (resumes) at 10 MB.
const MaxDocumentSize = 10 << 20

var imageTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
}

var documentTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// Result describes a stored file.
type Result struct {
	Path        string
	URL         string
	FileName    string
	Size        int64
	ContentType string
}

// Save stores a file under <kind>/YYYY/MM/<uuid8>-<name> and returns its
// storage path and public URL.
func Save(ctx context.Context, store storage.Store, kind, filename string, reader io.Reader, size int64, contentType string) (Result, error) {
	now := time.Now().UTC()
	dir := fmt.Sprintf("%s/%04d/%02d", kind, now.Year(), now.Month())
	name := fmt.Sprintf("%s-%s", uuid.New().String()[:8], sanitizeFilename(filename))
	path := filepath.ToSlash(filepath.Join(dir, name))

	opts := &storage.PutOptions{ContentType: contentType}
	if err := store.Put(ctx, path, reader, opts); err != nil {
		return Result{}, fmt.Errorf("store file: %w", err)
	}

	return Result{
		Path:        path,
		URL:         store.URL(path),
		FileName:    filename,
		Size:        size,
		ContentType: contentType,
	}, nil
}

// SaveImage reads the named multipart form field from r and stores it as an
// image under kind. It returns apierr validation errors for missing fields,
// oversized files, and non-image content types. A missing file is reported
// with ok=false and a nil error so optional image fields stay optional.
func SaveImage(ctx context.Context, store storage.Store, r *http.Request, field, kind string) (Result, bool, error) {
	file, header, err := r.FormFile(field)
	if err == http.ErrMissingFile {
		return Result{}, false, nil
	}
	if err != nil {
		return Result{}, false, apierr.Newf(apierr.ValidationFailed, "Invalid file upload for %q", field)
	}
	defer file.Close()

	res, err := saveChecked(ctx, store, kind, file, header, MaxImageSize, imageTypes, "an image")
	if err != nil {
		return Result{}, false, err
	}
	return res, true, nil
}

// SaveDocument reads the named multipart form field from r and stores it as
// a document (PDF or Word) under kind.
func SaveDocument(ctx context.Context, store storage.Store, r *http.Request, field, kind string) (Result, bool, error) {
	file, header, err := r.FormFile(field)
	if err == http.ErrMissingFile {
		return Result{}, false, nil
	}
	if err != nil {
		return Result{}, false, apierr.Newf(apierr.ValidationFailed, "Invalid file upload for %q", field)
	}
	defer file.Close()

	res, err := saveChecked(ctx, store, kind, file, header, MaxDocumentSize, documentTypes, "a PDF or Word document")
	if err != nil {
		return Result{}, false, err
	}
	return res, true, nil
}

func saveChecked(ctx context.Context, store storage.Store, kind string, file multipart.File, header *multipart.FileHeader, maxSize int64, allowed map[string]bool, want string) (Result, error) {
	if header.Size > maxSize {
		return Result{}, apierr.Newf(apierr.ValidationFailed, "File too large (max %d MB)", maxSize>>20)
	}

	contentType := header.Header.Get("Content-Type")
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	if !allowed[contentType] {
		return Result{}, apierr.Newf(apierr.ValidationFailed, "File must be %s", want)
	}

	return Save(ctx, store, kind, header.Filename, file, header.Size, contentType)
}

// sanitizeFilename strips path components and replaces characters outside
// [a-zA-Z0-9._-], keeping the extension when truncating long names.
func sanitizeFilename(filename string) string {
	filename = filepath.Base(filename)

	out := make([]byte, 0, len(filename))
	for i := 0; i < len(filename); i++ {
		c := filename[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			out = append(out, c)
		case c == '-' || c == '_' || c == '.':
			out = append(out, c)
		default:
			out = append(out, '_')
		}
	}

	if len(out) == 0 {
		return "file"
	}
	if len(out) > 100 {
		ext := filepath.Ext(string(out))
		if len(ext) > 0 && len(ext) < 10 {
			out = append(out[:100-len(ext)], ext...)
		} else {
			out = out[:100]
		}
	}
	return string(out)
}
