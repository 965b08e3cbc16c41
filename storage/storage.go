package storage

import (
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path"
	"strings"
)

type StorageAPI interface {
	// EnsureDirExists creates the storage location if missing
	EnsureDirExists() error
	// Save writes (or overwrites) the object called name
	Save(name string, reader io.Reader) (int64, error)
	Serve(name string, request *http.Request, writer http.ResponseWriter)
	Location() string
}

// CleanName reduces a client supplied filename to its last path element,
// so it cannot point outside of the storage location. Returns "" if nothing usable is left.
func CleanName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(path.Clean("/" + name))
	if name == "/" || name == "." {
		return ""
	}
	return name
}

// Store persists an uploaded file and returns the name it was stored under.
// The location is created first, even when there's nothing to store.
// A missing upload or one without a name is not an error - "" is returned.
// Existing files with the same name are overwritten.
func Store(s StorageAPI, upload *multipart.FileHeader) (string, error) {
	if err := s.EnsureDirExists(); err != nil {
		return "", err
	}
	if upload == nil {
		return "", nil
	}
	name := CleanName(upload.Filename)
	if name == "" {
		return "", nil
	}
	file, err := upload.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()
	size, err := s.Save(name, file)
	if err != nil {
		return "", err
	}
	log.Printf("Stored %s (%d bytes) in %s", name, size, s.Location())
	return name, nil
}
