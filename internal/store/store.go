// Package store persists small JSON documents as whole files.
//
// Every document is read and written in one piece. There is no locking and no
// atomic rename: a crash in the middle of Save can leave a truncated file, and
// the only recovery is Load falling back to the caller's default.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"reflect"
)

// ErrEmpty reports a document that exists but holds no data.
var ErrEmpty = errors.New("empty document")

// ReadError is returned when an existing document cannot be used.
// It is never fatal: Load has already substituted the default.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError is returned when a document could not be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Load decodes the JSON document at path.
//
// A missing file is created with def and def is returned. A file that cannot
// be read or decoded, or that decodes to an empty value, yields def together
// with a *ReadError; the file itself is left as is.
func Load[T any](path string, def T) (T, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return def, Save(path, def)
	}
	if err != nil {
		return def, &ReadError{Path: path, Err: err}
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return def, &ReadError{Path: path, Err: ErrEmpty}
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return def, &ReadError{Path: path, Err: err}
	}
	if isEmpty(v) {
		return def, nil
	}
	return v, nil
}

// Save writes v to path as indented JSON, replacing any previous content.
func Save(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	b = append(b, '\n')
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// EnsureDir creates dir and its parents. Failures are logged and otherwise
// ignored so that a read-only home directory does not stop the process.
func EnsureDir(dir string) bool {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("[WARN] could not create data directory at %s: %v", dir, err)
		return false
	}
	return true
}

func isEmpty(v any) bool {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Slice:
		return rv.Len() == 0
	default:
		return rv.IsZero()
	}
}
