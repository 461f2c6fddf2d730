package storage

import (
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"

	"github.com/brodyman30/YourFM/internal/config"
)

// Client stores generated station assets (bumper clips) in the
// configured backend.
type Client struct {
	backend      StorageProvider
	bucketAssets string
}

func New(cfg *config.Config) *Client {
	var backend StorageProvider

	if cfg.Storage.Provider == "local" {
		backend = &LocalProvider{RootPath: cfg.Storage.LocalPath}
	} else {
		// Defaulting to S3/B2
		s3Config := &aws.Config{
			Credentials:      credentials.NewStaticCredentials(cfg.Storage.KeyID, cfg.Storage.AppKey, ""),
			Endpoint:         aws.String(cfg.Storage.Endpoint),
			Region:           aws.String(cfg.Storage.Region),
			S3ForcePathStyle: aws.Bool(true),
		}
		sess := session.Must(session.NewSession(s3Config))
		backend = NewS3Provider(sess)
	}

	return &Client{
		backend:      backend,
		bucketAssets: cfg.Storage.BucketAssets,
	}
}

func (c *Client) UploadAsset(key string, body io.ReadSeeker, contentType string) error {
	return c.backend.Put(c.bucketAssets, key, body, contentType, "public, max-age=86400")
}

func (c *Client) DownloadAsset(key string) (*FileObject, error) {
	return c.backend.Get(c.bucketAssets, key)
}

func (c *Client) ListAssets(prefix string) ([]string, error) {
	return c.backend.List(c.bucketAssets, prefix)
}

func (c *Client) DeleteAsset(key string) error {
	return c.backend.Delete(c.bucketAssets, key)
}
