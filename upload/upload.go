package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"
)

// Receiver writes uploaded files to a local directory. Names are prefixed
// with the arrival timestamp in milliseconds so two uploads of the same file
// never collide.
type Receiver struct {
	dir string
}

func NewReceiver(dir string) (*Receiver, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Receiver{dir: dir}, nil
}

func (r *Receiver) Dir() string {
	return r.dir
}

// Save stores the file and returns the path to embed in a post.
func (r *Receiver) Save(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(file.Filename))
	path := filepath.Join(r.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return path, nil
}
