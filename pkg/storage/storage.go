// Package storage reads the static files served by the download routes
// from a local directory or an S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	ErrNotFound  = errors.New("storage: asset not found")
	ErrForbidden = errors.New("storage: asset outside the asset root")
)

// Asset is an open file. The caller must Close it.
type Asset struct {
	Body    io.ReadCloser
	Size    int64 // -1 when unknown
	ModTime time.Time
}

func (a *Asset) Close() error {
	return a.Body.Close()
}

// AssetStore opens assets by flat name, e.g. "resume.pdf"
type AssetStore interface {
	Open(ctx context.Context, name string) (*Asset, error)
}
