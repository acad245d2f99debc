// Package filestore keeps uploaded images on local disk.
package filestore

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Store persists an upload and returns the name it was stored under
type Store interface {
	Save(fh *multipart.FileHeader) (string, error)
}

type DiskStore struct {
	dir string
	now func() time.Time
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create image dir: %w", err)
	}
	return &DiskStore{dir: dir, now: time.Now}, nil
}

func (s *DiskStore) Dir() string {
	return s.dir
}

// Save writes the upload as <unix nanos>_<base name>
func (s *DiskStore) Save(fh *multipart.FileHeader) (string, error) {
	name := fmt.Sprintf("%d_%s", s.now().UnixNano(), sanitize(fh.Filename))

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", err
	}
	return name, dst.Close()
}

func sanitize(filename string) string {
	base := filepath.Base(filepath.Clean("/" + filename))
	base = strings.ReplaceAll(base, " ", "_")
	if base == "/" || base == "." {
		return "upload"
	}
	return base
}
