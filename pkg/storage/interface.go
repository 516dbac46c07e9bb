package storage

import (
	"context"
	"fmt"
	"io"
	"time"
)

// StorageProvider stores generated files such as booking reports.
type StorageProvider interface {
	Upload(ctx context.Context, request *UploadRequest) (*UploadResponse, error)
	GetURL(ctx context.Context, key string, expiration time.Duration) (string, error)
}

type UploadRequest struct {
	Key          string            `json:"key"`
	Reader       io.Reader         `json:"-"`
	ContentType  string            `json:"content_type"`
	Size         int64             `json:"size"`
	Metadata     map[string]string `json:"metadata"`
	CacheControl string            `json:"cache_control"`
}

type UploadResponse struct {
	Key      string `json:"key"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
	ETag     string `json:"etag,omitempty"`
	Location string `json:"location,omitempty"`
}

type Config struct {
	Provider string // local, aws, gcp

	LocalBasePath string
	LocalBaseURL  string

	AWSRegion    string
	AWSBucket    string
	AWSCDNDomain string

	GCPBucket          string
	GCPCredentialsFile string
	GCPCDNDomain       string
}

// New builds the provider selected by cfg.Provider.
func New(ctx context.Context, cfg Config) (StorageProvider, error) {
	switch cfg.Provider {
	case "", "local":
		return NewLocalStorage(cfg.LocalBasePath, cfg.LocalBaseURL)
	case "aws", "s3":
		return NewAWSS3Storage(ctx, cfg.AWSRegion, cfg.AWSBucket, cfg.AWSCDNDomain)
	case "gcp", "gcs":
		return NewGCPStorage(ctx, cfg.GCPBucket, cfg.GCPCredentialsFile, cfg.GCPCDNDomain)
	default:
		return nil, fmt.Errorf("unknown storage provider %q", cfg.Provider)
	}
}
