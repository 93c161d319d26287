// Package storage stores product image files in a public bucket.
//
// Two drivers exist: "local" writes under a directory served by the app,
// "s3" talks to any S3-compatible service (AWS, MinIO, R2, Supabase storage).
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ErrExists is returned by Put when the path is taken and overwrite is off.
var ErrExists = errors.New("storage: object already exists")

// Bucket is the file storage surface the catalog needs.
type Bucket interface {
	// Put uploads r to path. Unless overwrite is set, an existing object
	// makes Put fail with ErrExists.
	Put(ctx context.Context, path string, r io.Reader, contentType string, overwrite bool) error
	Delete(ctx context.Context, path string) error
	// URL returns the public URL for path.
	URL(path string) string
}

type Options struct {
	Driver    string
	Bucket    string
	LocalRoot string
	BaseURL   string
	Region    string
	Key       string
	Secret    string
	Endpoint  string
}

// New builds the bucket selected by opts.Driver.
func New(ctx context.Context, opts Options) (Bucket, error) {
	switch opts.Driver {
	case "", "local":
		return NewLocal(opts.LocalRoot, opts.BaseURL)
	case "s3":
		return NewS3(ctx, opts)
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", opts.Driver)
	}
}
