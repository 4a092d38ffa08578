package templates

import (
	"os"
	"path/filepath"
	"strings"
	"syscall"

	derrors "github.com/igor47/dcsm/internal/errors"
)

// TemplateFile is a discovered template: its path, raw content, and the
// permission and ownership metadata copied onto the rendered file.
// Immutable once read.
type TemplateFile struct {
	Path    string
	Content []byte
	Mode    os.FileMode
	UID     int
	GID     int
}

// RenderedFile is the substituted content bound for its destination path,
// carrying the template's metadata. It exists only between rendering and
// the write.
type RenderedFile struct {
	Path    string
	Content []byte
	Mode    os.FileMode
	UID     int
	GID     int
}

// Destination returns the output path for a template path.
func Destination(path string) string {
	return strings.TrimSuffix(path, Suffix)
}

// ReadTemplate reads one template file along with its metadata.
func ReadTemplate(path string) (*TemplateFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &derrors.IOError{Op: "read", Path: path, Err: err}
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, &derrors.IOError{Op: "stat", Path: path, Err: err}
	}

	uid, gid := ownership(info)
	return &TemplateFile{
		Path:    path,
		Content: content,
		Mode:    info.Mode().Perm(),
		UID:     uid,
		GID:     gid,
	}, nil
}

// RenderAll reads and renders every template against the mapping. The whole
// batch is computed in memory before anything is written: if any template
// is unreadable or references a missing secret, no output file is touched.
func RenderAll(paths []string, mapping map[string]string) ([]RenderedFile, error) {
	rendered := make([]RenderedFile, 0, len(paths))

	for _, path := range paths {
		tmpl, err := ReadTemplate(path)
		if err != nil {
			return nil, err
		}

		content, err := Render(tmpl.Content, mapping, path)
		if err != nil {
			return nil, err
		}

		rendered = append(rendered, RenderedFile{
			Path:    Destination(path),
			Content: content,
			Mode:    tmpl.Mode,
			UID:     tmpl.UID,
			GID:     tmpl.GID,
		})
	}

	return rendered, nil
}

// WriteAll materializes every rendered file in order.
func WriteAll(files []RenderedFile) error {
	for _, f := range files {
		if err := Write(f); err != nil {
			return err
		}
	}
	return nil
}

// Write commits one rendered file: the content goes to a temporary file in
// the destination directory, metadata is applied there, and an atomic
// rename moves it over the destination. A reader never observes a partial
// file, and a crash mid-write never corrupts an existing rendered file.
func Write(f RenderedFile) error {
	dir := filepath.Dir(f.Path)

	tmp, err := os.CreateTemp(dir, ".dcsm-*")
	if err != nil {
		return &derrors.IOError{Op: "create temp file in", Path: dir, Err: err}
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once the rename has happened

	if _, err := tmp.Write(f.Content); err != nil {
		tmp.Close()
		return &derrors.IOError{Op: "write", Path: tmpPath, Err: err}
	}
	if err := tmp.Chmod(f.Mode); err != nil {
		tmp.Close()
		return &derrors.IOError{Op: "chmod", Path: tmpPath, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return &derrors.IOError{Op: "sync", Path: tmpPath, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &derrors.IOError{Op: "close", Path: tmpPath, Err: err}
	}

	if f.UID >= 0 {
		if err := os.Chown(tmpPath, f.UID, f.GID); err != nil {
			return &derrors.IOError{Op: "chown", Path: f.Path, Err: err}
		}
	}

	if err := os.Rename(tmpPath, f.Path); err != nil {
		return &derrors.IOError{Op: "rename over", Path: f.Path, Err: err}
	}
	return nil
}

// ownership extracts uid/gid from stat data. On platforms without it the
// rendered file keeps the process's ownership.
func ownership(info os.FileInfo) (int, int) {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return int(st.Uid), int(st.Gid)
	}
	return -1, -1
}
