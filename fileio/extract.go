package fileio

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/leocov-dev/packlaunch/core"
)

// Extract unpacks a zip archive into destDir. Entries whose name starts with
// one of the exclude prefixes are skipped.
func Extract(archivePath, destDir string, exclude []string) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return &core.ArchiveAccessError{Path: archivePath, Err: err}
	}
	defer r.Close()

	for _, f := range r.File {
		if excluded(f.Name, exclude) {
			continue
		}
		if err := extractEntry(f, destDir); err != nil {
			return &core.ArchiveAccessError{Path: archivePath, Err: err}
		}
	}
	return nil
}

func excluded(name string, exclude []string) bool {
	for _, prefix := range exclude {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

func extractEntry(f *zip.File, destDir string) error {
	target := filepath.Join(destDir, filepath.FromSlash(f.Name))
	rel, err := filepath.Rel(destDir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("entry %s escapes the destination directory", f.Name)
	}

	if f.FileInfo().IsDir() {
		return os.MkdirAll(target, os.ModePerm)
	}

	src, err := f.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := CreateFile(target)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return err
	}
	return dst.Close()
}

// ReadEntry returns the content of a single archive entry.
func ReadEntry(archivePath, name string) ([]byte, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, &core.ArchiveAccessError{Path: archivePath, Err: err}
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, &core.ArchiveAccessError{Path: archivePath, Err: err}
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, &core.ArchiveAccessError{Path: archivePath, Err: err}
		}
		return data, nil
	}
	return nil, &core.DescriptorMissingError{Archive: archivePath, Entry: name}
}
