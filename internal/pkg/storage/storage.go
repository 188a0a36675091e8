package storage

import (
	"context"
	"io"
)

// Config holds object storage configuration.
type Config struct {
	Endpoint  string // optional, for S3-compatible services
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string // optional CDN/public base URL
}

// Storage is the minimal interface for image storage backends.
type Storage interface {
	Put(ctx context.Context, key string, reader io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error
	GetURL(key string) string
}
