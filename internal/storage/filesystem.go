package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/casdoor/oss"
)

// LocalFileSystem implements oss.StorageInterface on a local folder, for
// single-instance deployments and development.
type LocalFileSystem struct {
	Folder string
}

func NewFileSystem(folder string) *LocalFileSystem {
	abs, err := filepath.Abs(folder)
	if err != nil {
		panic("failed to resolve local storage folder")
	}
	if err := os.MkdirAll(abs, os.ModePerm); err != nil {
		panic("failed to create local storage folder")
	}
	return &LocalFileSystem{Folder: abs}
}

func (fs *LocalFileSystem) fullPath(p string) string {
	if strings.HasPrefix(p, fs.Folder) {
		return p
	}
	fp, _ := filepath.Abs(filepath.Join(fs.Folder, p))
	return fp
}

func (fs *LocalFileSystem) Get(p string) (*os.File, error) {
	return os.Open(fs.fullPath(p))
}

func (fs *LocalFileSystem) GetStream(p string) (io.ReadCloser, error) {
	return os.Open(fs.fullPath(p))
}

func (fs *LocalFileSystem) Put(p string, reader io.Reader) (*oss.Object, error) {
	fp := fs.fullPath(p)
	if err := os.MkdirAll(filepath.Dir(fp), os.ModePerm); err != nil {
		return nil, err
	}

	dst, err := os.Create(fp)
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	if seeker, ok := reader.(io.ReadSeeker); ok {
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
	}
	if _, err := io.Copy(dst, reader); err != nil {
		return nil, err
	}

	now := time.Now()
	return &oss.Object{
		Path:             p,
		Name:             filepath.Base(p),
		LastModified:     &now,
		StorageInterface: fs,
	}, nil
}

func (fs *LocalFileSystem) Delete(p string) error {
	return os.Remove(fs.fullPath(p))
}

func (fs *LocalFileSystem) List(p string) ([]*oss.Object, error) {
	var objects []*oss.Object

	fp := fs.fullPath(p)
	err := filepath.Walk(fp, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		modTime := info.ModTime()
		objects = append(objects, &oss.Object{
			Path:             strings.TrimPrefix(path, fs.Folder),
			Name:             info.Name(),
			LastModified:     &modTime,
			StorageInterface: fs,
		})
		return nil
	})

	return objects, err
}

func (fs *LocalFileSystem) GetEndpoint() string {
	return "/"
}

func (fs *LocalFileSystem) GetURL(p string) (string, error) {
	return p, nil
}
