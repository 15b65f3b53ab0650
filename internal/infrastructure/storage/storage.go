// Package storage persists uploaded files on local disk or in a GCS bucket.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	gcs "cloud.google.com/go/storage"

	"github.com/oksasatya/storefront-api/pkg/helpers"
)

// Store writes named objects and returns the public URL for each.
type Store interface {
	Put(ctx context.Context, name, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, name string) error
}

// LocalStore writes into Dir, served statically under PublicPath.
type LocalStore struct {
	Dir        string
	PublicPath string
}

func NewLocalStore(dir, publicPath string) *LocalStore {
	return &LocalStore{Dir: dir, PublicPath: "/" + strings.Trim(publicPath, "/")}
}

func (s *LocalStore) Put(_ context.Context, name, _ string, data []byte) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.Dir, filepath.Base(name)), data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return path.Join(s.PublicPath, filepath.Base(name)), nil
}

func (s *LocalStore) Delete(_ context.Context, name string) error {
	err := os.Remove(filepath.Join(s.Dir, filepath.Base(name)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// GCSStore writes objects under Prefix in Bucket.
type GCSStore struct {
	Client *gcs.Client
	Bucket string
	Prefix string
}

func NewGCSStore(client *gcs.Client, bucket, prefix string) *GCSStore {
	return &GCSStore{Client: client, Bucket: bucket, Prefix: strings.Trim(prefix, "/")}
}

func (s *GCSStore) object(name string) string {
	if s.Prefix == "" {
		return name
	}
	return s.Prefix + "/" + name
}

func (s *GCSStore) Put(ctx context.Context, name, contentType string, data []byte) (string, error) {
	return helpers.UploadObject(ctx, s.Client, s.Bucket, s.object(name), contentType, bytes.NewReader(data))
}

func (s *GCSStore) Delete(ctx context.Context, name string) error {
	return helpers.DeleteObject(ctx, s.Client, s.Bucket, s.object(name))
}
