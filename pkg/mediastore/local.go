package mediastore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"
)

// LocalStore is an Uploader that copies files into a directory served as
// static content, returning a relative URL. Intended for local development
// when no remote media host is configured.
type LocalStore struct {
	dir     string
	baseURL string
	seq     uint64 // disambiguates same-nanosecond concurrent uploads
}

// NewLocalStore creates a LocalStore writing into dir. Files are reachable
// under baseURL (e.g. "/uploads").
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", dir, err)
	}
	return &LocalStore{dir: dir, baseURL: baseURL}, nil
}

// Upload copies the file into the store under a unique name.
func (s *LocalStore) Upload(ctx context.Context, localPath string) (*UploadResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", localPath, err)
	}
	defer src.Close()

	filename := fmt.Sprintf("%d_%d%s", time.Now().UnixNano(), atomic.AddUint64(&s.seq, 1), filepath.Ext(localPath))
	destination := filepath.Join(s.dir, filename)

	dst, err := os.Create(destination)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", destination, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", destination, err)
	}

	return &UploadResult{URL: s.baseURL + "/" + filename}, nil
}
