// Package storage abstracts the object store that holds uploaded images and
// generated export files.
package storage

import (
	"errors"
	"fmt"
	"io"
)

// ErrObjectNotFound means the remote path holds no object.
var ErrObjectNotFound = errors.New("storage: object not found")

// ObjectStorage is the contract consumed by the service layer. Upload moves
// a local file into the store (the local copy is removed on success) and
// returns the object's public URL.
type ObjectStorage interface {
	Upload(localPath, remotePath, mimeType string) (string, error)
	Open(remotePath string) (io.ReadCloser, error)
	Delete(remotePath string) error
}

// ObjectPath builds the conventional <folder>/<userID>/<fileName> key.
func ObjectPath(folder string, userID uint, fileName string) string {
	return fmt.Sprintf("%s/%d/%s", folder, userID, fileName)
}
