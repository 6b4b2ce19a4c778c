// Package archive stores raw upstream payloads in S3-compatible storage.
package archive

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ecfr-analyzer/ecfr-analyzer/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Archiver interface {
	Put(ctx context.Context, key string, data []byte) error
	Type() string
}

type Opts func(c *minioConfig)

type minioConfig struct {
	endpoint        string
	bucket          string
	region          string
	accessKey       string
	secretAccessKey string
	useSSL          bool
}

func newConfig(opts ...Opts) *minioConfig {
	cfg := &minioConfig{
		useSSL: false,
	}

	for _, o := range opts {
		o(cfg)
	}
	return cfg
}

type minioArchiver struct {
	cfg    *minioConfig
	client *minio.Client
}

func NewMinioArchiver(opts ...Opts) (Archiver, error) {
	cfg := newConfig(opts...)
	if cfg.endpoint == "" {
		return nil, fmt.Errorf("archive endpoint not set")
	}

	minioClient, err := minio.New(cfg.endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.accessKey, cfg.secretAccessKey, ""),
		Secure: cfg.useSSL,
		Region: cfg.region,
	})
	if err != nil {
		return nil, err
	}

	return &minioArchiver{cfg: cfg, client: minioClient}, nil
}

// New returns the archiver described by cfg, or a no-op archiver when no
// endpoint is configured.
func New(cfg *config.Config) (Archiver, error) {
	if cfg.Archive == nil || cfg.Archive.Endpoint == "" {
		return Noop{}, nil
	}
	return NewMinioArchiver(
		WithEndpoint(cfg.Archive.Endpoint),
		WithBucket(cfg.Archive.Bucket),
		WithAccessKey(cfg.Archive.AccessKey),
		WithSecretKey(cfg.Archive.SecretKey),
		WithSSL(cfg.Archive.UseSSL),
	)
}

func (m *minioArchiver) Put(ctx context.Context, key string, data []byte) error {
	_, err := m.client.PutObject(ctx, m.cfg.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to archive %s/%s: %w", m.cfg.bucket, key, err)
	}
	return nil
}

func (m *minioArchiver) Type() string {
	return "minio"
}

type Noop struct{}

func (Noop) Put(context.Context, string, []byte) error { return nil }

func (Noop) Type() string { return "noop" }

// VersionsKey is the object key of a title's raw versions payload.
func VersionsKey(titleNumber int) string {
	return fmt.Sprintf("versions/title-%d.json", titleNumber)
}

func WithEndpoint(endpoint string) Opts {
	return func(c *minioConfig) {
		c.endpoint = endpoint
	}
}

func WithBucket(bucket string) Opts {
	return func(c *minioConfig) {
		c.bucket = bucket
	}
}

func WithRegion(region string) Opts {
	return func(c *minioConfig) {
		c.region = region
	}
}

func WithAccessKey(accessKey string) Opts {
	return func(c *minioConfig) {
		c.accessKey = accessKey
	}
}

func WithSecretKey(secretKey string) Opts {
	return func(c *minioConfig) {
		c.secretAccessKey = secretKey
	}
}

func WithSSL(useSSL bool) Opts {
	return func(c *minioConfig) {
		c.useSSL = useSSL
	}
}
