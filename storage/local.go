package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ErrUploadDirUnavailable is returned when the destination directory cannot
// be created under the upload root.
var ErrUploadDirUnavailable = errors.New("failed to create upload directory")

type LocalUploaderConfig struct {
	// RootDir is the directory that backs the /uploads URL prefix.
	RootDir string
	// PublicBaseURL prefixes public URLs, e.g. https://api.example.com.
	// Optional; when empty GetPublicURL returns a root-relative URL.
	PublicBaseURL string
}

type localUploader struct {
	root          string
	publicBaseURL string
}

func NewLocalUploader(cfg LocalUploaderConfig) (FileUploader, error) {
	if cfg.RootDir == "" {
		return nil, errors.New("invalid local uploader configuration: RootDir is required")
	}
	return &localUploader{
		root:          cfg.RootDir,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
	}, nil
}

// Upload writes the stream to <root>/<key>. The bucket directory is created
// on demand (idempotent, recursive). A key that already exists is silently
// overwritten: the store's time-based names make that a narrow window, and
// last writer wins.
func (u *localUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error) {
	dir := filepath.Join(u.root, filepath.FromSlash(path.Dir(key)))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadDirUnavailable, err)
	}

	dst := filepath.Join(u.root, filepath.FromSlash(key))
	f, err := os.Create(dst)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload file %s: %w", dst, err)
	}

	if _, err := io.Copy(f, reader); err != nil {
		f.Close()
		os.Remove(dst)
		return nil, fmt.Errorf("failed to write upload file %s: %w", dst, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close upload file %s: %w", dst, err)
	}

	return &UploadResult{
		Key:      key,
		Location: u.GetPublicURL(key),
	}, nil
}

func (u *localUploader) Delete(ctx context.Context, key string) error {
	err := os.Remove(filepath.Join(u.root, filepath.FromSlash(key)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete upload file (key: %s): %w", key, err)
	}
	return nil
}

func (u *localUploader) GetPublicURL(key string) string {
	if key == "" {
		return ""
	}
	return u.publicBaseURL + "/uploads/" + strings.TrimPrefix(key, "/")
}
