// Package fs provides file-based storage for index builds and the JSON
// files passed between pipeline stages.
package fs

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fwojciec/menurag"
)

// WriteJSON encodes v as indented JSON and atomically replaces path with it.
// Parent directories are created as needed.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return err
	}
	return WriteFile(path, append(data, '\n'))
}

// ReadJSON decodes the JSON file at path into v.
// Returns ENOTFOUND if the file does not exist and EMALFORMED if it does
// not decode.
func ReadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return menurag.Errorf(menurag.ENOTFOUND, "%s not found", path)
	} else if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return menurag.Errorf(menurag.EMALFORMED, "%s: %v", path, err)
	}
	return nil
}

// WriteFile writes data to a temporary file next to path and renames
// it into place, so readers see either the old or the new content.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
