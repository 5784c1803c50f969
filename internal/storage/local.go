package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Local stores objects on the local filesystem under a root directory and
// serves them under a configured public base URL.
type Local struct {
	root    string
	baseURL string
}

func NewLocal(root, baseURL string) (*Local, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &Local{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (l *Local) fullPath(remotePath string) string {
	return filepath.Join(l.root, filepath.FromSlash(remotePath))
}

// Upload moves the local file into the store and returns its public URL.
// The source file is removed once the copy is durable.
func (l *Local) Upload(localPath, remotePath, mimeType string) (string, error) {
	src, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open upload source: %w", err)
	}
	defer src.Close()

	dstPath := l.fullPath(remotePath)
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return "", fmt.Errorf("create object dir: %w", err)
	}

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("create object: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("write object: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("close object: %w", err)
	}

	src.Close()
	_ = os.Remove(localPath)

	return l.baseURL + "/" + remotePath, nil
}

func (l *Local) Open(remotePath string) (io.ReadCloser, error) {
	f, err := os.Open(l.fullPath(remotePath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrObjectNotFound
		}
		return nil, err
	}
	return f, nil
}

func (l *Local) Delete(remotePath string) error {
	err := os.Remove(l.fullPath(remotePath))
	if err != nil && os.IsNotExist(err) {
		return ErrObjectNotFound
	}
	return err
}
