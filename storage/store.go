package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
	"time"
)

var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds the size limit")
)

// Size ceilings are inclusive and intentionally small; they mirror the
// limits the registration frontend was built against.
const (
	MaxImageBytes = 20 * 1024
	MaxPDFBytes   = 100 * 1024
)

// StoredFile describes a persisted upload. RelativePath is what gets written
// to the database and later served under the /uploads static prefix; it
// always uses forward slashes regardless of the host path separator.
type StoredFile struct {
	Bucket       Bucket
	Name         string
	RelativePath string
}

// UploadStore validates an incoming file and persists it in the bucket
// chosen by ClassifyUpload.
type UploadStore struct {
	uploader FileUploader

	// now is swappable in tests.
	now func() time.Time
}

func NewUploadStore(uploader FileUploader) *UploadStore {
	return &UploadStore{
		uploader: uploader,
		now:      time.Now,
	}
}

// Save classifies, validates and persists one uploaded file. Validation
// happens before any byte is written: a rejected upload leaves no file
// behind.
//
// The stored name is the current millisecond timestamp plus the original
// extension. Two uploads landing in the same bucket within the same
// millisecond collide and the last writer wins; the window is narrow and
// kept for compatibility with paths already referenced by the frontend.
func (s *UploadStore) Save(ctx context.Context, op UploadOp, field, originalName, contentType string, size int64, r io.Reader) (*StoredFile, error) {
	bucket, err := ClassifyUpload(op, field)
	if err != nil {
		return nil, err
	}

	limit, err := sizeLimit(contentType)
	if err != nil {
		return nil, err
	}
	if size > limit {
		return nil, fmt.Errorf("%w: %d bytes (limit %d)", ErrFileTooLarge, size, limit)
	}

	name := strconv.FormatInt(s.now().UnixMilli(), 10) + fileExtension(originalName, contentType)
	key := string(bucket) + "/" + name

	if _, err := s.uploader.Upload(ctx, key, contentType, io.LimitReader(r, limit)); err != nil {
		return nil, err
	}

	// Stored paths are URL paths, never OS paths.
	rel := strings.ReplaceAll("/uploads/"+key, "\\", "/")

	return &StoredFile{
		Bucket:       bucket,
		Name:         name,
		RelativePath: rel,
	}, nil
}

func sizeLimit(contentType string) (int64, error) {
	switch contentType {
	case "image/jpeg", "image/png":
		return MaxImageBytes, nil
	case "application/pdf":
		return MaxPDFBytes, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFileType, contentType)
	}
}

// fileExtension prefers the extension of the client-supplied name and falls
// back to one derived from the content type.
func fileExtension(originalName, contentType string) string {
	if ext := path.Ext(originalName); ext != "" {
		return ext
	}
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "application/pdf":
		return ".pdf"
	}
	return ""
}
