package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Local keeps objects on the filesystem below root.
type Local struct {
	root    string
	baseURL string
}

func NewLocal(root, baseURL string) (*Local, error) {
	if root == "" {
		root = "storage"
	}
	if !filepath.IsAbs(root) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("storage/local: getwd: %w", err)
		}
		root = filepath.Join(cwd, root)
	}
	return &Local{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Root is the directory objects are written to.
func (d *Local) Root() string { return d.root }

func (d *Local) abs(path string) string {
	return filepath.Join(d.root, filepath.FromSlash(strings.TrimLeft(path, "/")))
}

func (d *Local) Put(_ context.Context, path string, r io.Reader, _ string, overwrite bool) error {
	full := d.abs(path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("storage/local: mkdir: %w", err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	f, err := os.OpenFile(full, flags, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return ErrExists
		}
		return fmt.Errorf("storage/local: create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("storage/local: write %s: %w", path, err)
	}
	return nil
}

func (d *Local) Delete(_ context.Context, path string) error {
	err := os.Remove(d.abs(path))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage/local: delete %s: %w", path, err)
	}
	return nil
}

func (d *Local) URL(path string) string {
	return d.baseURL + "/" + strings.TrimLeft(filepath.ToSlash(path), "/")
}
