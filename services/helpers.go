package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ndcacricket/registration-system/models"
	"github.com/ndcacricket/registration-system/storage"
)

// UploadedFile is one file lifted out of a multipart request by a handler.
type UploadedFile struct {
	Field       string
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// Mailer sends the registration-flow notification emails.
type Mailer interface {
	SendTeamRegistered(team *models.Team, password string) error
	SendTeamUpdated(team *models.Team, usernameChanged, passwordChanged bool) error
}

// LiveFeed publishes entity events to connected dashboards. Implemented by
// live.Hub.
type LiveFeed interface {
	Publish(event string, payload any)
}

// mergeFileField decides whether an update keeps a previously stored file
// reference or replaces it: a newly uploaded path wins, otherwise the
// current row's path is retained unchanged.
func mergeFileField(newPath, currentPath *string) *string {
	if newPath != nil && *newPath != "" {
		return newPath
	}
	return currentPath
}

// saveUpload stores one optional file and returns its relative path, or nil
// when no file was supplied for the field.
func saveUpload(ctx context.Context, uploads *storage.UploadStore, op storage.UploadOp, file *UploadedFile) (*string, error) {
	if file == nil {
		return nil, nil
	}
	stored, err := uploads.Save(ctx, op, file.Field, file.Name, file.ContentType, file.Size, file.Reader)
	if err != nil {
		return nil, err
	}
	return &stored.RelativePath, nil
}

// logOrphanedUploads records files that made it to disk before a failed
// database write. There is no transactional link between the two: the file
// stays behind and is only reported, never rolled back.
func logOrphanedUploads(logger *slog.Logger, cause error, paths ...*string) {
	for _, p := range paths {
		if p == nil || *p == "" {
			continue
		}
		logger.Warn("orphaned upload left on storage after failed write",
			slog.String("path", *p),
			slog.Any("error", cause),
		)
	}
}

const dateLayout = "2006-01-02"

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return t, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
