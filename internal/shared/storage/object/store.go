package object

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"resume-screener/internal/shared/util"
)

// Object describes a stored upload.
type Object struct {
	Key         string
	Size        int64
	ContentType string
}

// Store archives uploaded resumes.
type Store interface {
	Put(ctx context.Context, key string, contentType string, r io.Reader) (Object, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// UploadKey builds the archive key for one upload: uploads/YYYY/MM/<batch>/<file>.
func UploadKey(batchID, fileName string, at time.Time) (string, error) {
	name, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", fmt.Errorf("sanitize file name: %w", err)
	}
	if batchID == "" {
		return "", fmt.Errorf("batch id is required")
	}
	at = at.UTC()
	return path.Join("uploads", at.Format("2006"), at.Format("01"), batchID, name), nil
}
