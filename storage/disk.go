package storage

import (
	"errors"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
)

type DiskStorage struct {
	// Dir is a writable directory. Its parent must exist, Dir itself is created on first use.
	Dir string
}

func (s *DiskStorage) EnsureDirExists() error {
	fi, err := os.Stat(s.Dir)
	if err == nil {
		if !fi.IsDir() {
			return &fs.PathError{Op: "mkdir", Path: s.Dir, Err: fs.ErrExist}
		}
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	// Not MkdirAll - a missing parent is a configuration problem
	if err = os.Mkdir(s.Dir, 0755); err != nil && !errors.Is(err, fs.ErrExist) {
		return err
	}
	return nil
}

func (s *DiskStorage) getFullPath(name string) string {
	return filepath.Join(s.Dir, name)
}

func (s *DiskStorage) Save(name string, reader io.Reader) (int64, error) {
	file, err := os.Create(s.getFullPath(name))
	if err != nil {
		return 0, err
	}
	result, err := io.Copy(file, reader)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	return result, err
}

func (s *DiskStorage) Serve(name string, request *http.Request, writer http.ResponseWriter) {
	name = CleanName(name)
	if name == "" {
		http.NotFound(writer, request)
		return
	}
	http.ServeFile(writer, request, s.getFullPath(name))
}

func (s *DiskStorage) Location() string {
	return s.Dir
}

func NewDiskStorage(dir string) StorageAPI {
	return &DiskStorage{Dir: dir}
}
