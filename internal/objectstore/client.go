// Package objectstore stores uploaded images and per-object crops in
// MinIO/S3-compatible storage.
//
// Failures are classified for the pipeline's retry logic: HTTP 5xx and
// network errors are transient, 4xx responses (missing bucket, bad key,
// access denied) are permanent.
package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/stylelens/stylelens/internal/adapterr"
	"github.com/stylelens/stylelens/internal/logger"
)

// Client wraps the MinIO SDK with the two operations the pipeline needs:
// put a blob, get a blob.
type Client struct {
	api     *minio.Client
	cfg     Config
	timeout time.Duration
	log     logger.Logger
}

// NewClient constructs the MinIO client. Bucket existence is ensured by the
// fx start hook (EnsureBucket), not here.
func NewClient(cfg Config, log logger.Logger) (*Client, error) {
	api, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("objectstore: init client: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultConfig().Timeout
	}

	return &Client{api: api, cfg: cfg, timeout: timeout, log: log}, nil
}

// EnsureBucket creates the configured bucket if missing. Safe to call
// repeatedly.
func (c *Client) EnsureBucket(ctx context.Context) error {
	exists, err := c.api.BucketExists(ctx, c.cfg.Bucket)
	if err != nil {
		return fmt.Errorf("objectstore: check bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := c.api.MakeBucket(ctx, c.cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("objectstore: create bucket %q: %w", c.cfg.Bucket, err)
	}
	c.log.Info("created bucket", nil, map[string]interface{}{"bucket": c.cfg.Bucket})
	return nil
}

// Put uploads data under key and returns the public URL to store with the
// detected object.
func (c *Client) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	_, err := c.api.PutObject(ctx, c.cfg.Bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", c.classify("put "+key, err)
	}
	return c.publicURL(key), nil
}

// Get downloads the object stored under key, or under a URL previously
// returned by Put.
func (c *Client) Get(ctx context.Context, keyOrURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	key := c.keyFromURL(keyOrURL)

	obj, err := c.api.GetObject(ctx, c.cfg.Bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, c.classify("get "+key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, c.classify("read "+key, err)
	}
	return data, nil
}

func (c *Client) publicURL(key string) string {
	base := c.cfg.PublicBaseURL
	if base == "" {
		scheme := "http"
		if c.cfg.UseSSL {
			scheme = "https"
		}
		base = scheme + "://" + c.cfg.Endpoint
	}
	return strings.TrimSuffix(base, "/") + "/" + c.cfg.Bucket + "/" + key
}

// keyFromURL strips the base URL and bucket prefix when the caller passes a
// full URL instead of a bare key.
func (c *Client) keyFromURL(keyOrURL string) string {
	if !strings.Contains(keyOrURL, "://") {
		return keyOrURL
	}
	u, err := url.Parse(keyOrURL)
	if err != nil {
		return keyOrURL
	}
	path := strings.TrimPrefix(u.Path, "/")
	return strings.TrimPrefix(path, c.cfg.Bucket+"/")
}

// classify maps MinIO errors onto the pipeline's transient/permanent
// taxonomy.
func (c *Client) classify(op string, err error) error {
	resp := minio.ToErrorResponse(err)
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return adapterr.Permanent("objectstore: "+op, err)
	}
	return adapterr.Transient("objectstore: "+op, err)
}
