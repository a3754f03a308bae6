// Package fsutil has the file copy helpers shared by the pipeline stages.
package fsutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CopyFile copies src to dst with the given mode, truncating dst if it
// exists.
func CopyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("open dest: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	return nil
}

// CopyTree recursively copies the directory tree at src to dst, preserving
// file modes. Symlinks inside npm trees are followed, not recreated: a link
// to a directory is copied as a full directory, a link to a file as a
// regular file.
func CopyTree(src, dst string) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		// Walk lstats and never descends into symlinks, so resolve them
		// here. npm trees link .bin entries and sometimes whole packages.
		if info.Mode()&os.ModeSymlink != 0 {
			resolved, err := filepath.EvalSymlinks(path)
			if err != nil {
				return fmt.Errorf("resolving symlink %s: %w", path, err)
			}
			ri, err := os.Stat(resolved)
			if err != nil {
				return err
			}
			if ri.IsDir() {
				return CopyTree(resolved, target)
			}
			return CopyFile(resolved, target, ri.Mode().Perm())
		}

		if info.IsDir() {
			return os.MkdirAll(target, info.Mode().Perm())
		}
		return CopyFile(path, target, info.Mode().Perm())
	})
}
