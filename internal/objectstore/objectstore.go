// Package objectstore downloads resumes from S3 compatible buckets such as R2 or MinIO.
package objectstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Scheme is the URI scheme handled by Client.
const Scheme = "s3://"

// MaxObjectSize caps a single download.
const MaxObjectSize = 25 << 20

const (
	defaultAttempts = 3
	defaultBackoff  = 500 * time.Millisecond
)

// Config holds the connection settings for a bucket.
type Config struct {
	Bucket    string // used for s3:///key locations
	Region    string
	Endpoint  string // custom endpoint for R2 or MinIO; empty for AWS
	AccessKey string
	SecretKey string
}

type getObjectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Client fetches objects by s3:// URI. It satisfies pipeline.Fetcher.
type Client struct {
	api      getObjectAPI
	bucket   string
	attempts int
	backoff  time.Duration
}

// New builds a client from static credentials, or from the default AWS credential
// chain when none are given.
func New(ctx context.Context, cfg Config) (*Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" || cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	api := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return newClient(api, cfg.Bucket), nil
}

func newClient(api getObjectAPI, bucket string) *Client {
	return &Client{api: api, bucket: bucket, attempts: defaultAttempts, backoff: defaultBackoff}
}

// ParseURI splits s3://bucket/key. An empty bucket (s3:///key) is allowed and means
// the client's default bucket.
func ParseURI(uri string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(uri, Scheme)
	if !ok {
		return "", "", fmt.Errorf("not an s3 uri: %q", uri)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if key == "" {
		return "", "", fmt.Errorf("s3 uri has no object key: %q", uri)
	}
	return bucket, key, nil
}

// Handles reports whether location is an s3:// URI.
func (c *Client) Handles(location string) bool {
	return strings.HasPrefix(location, Scheme)
}

// Fetch downloads the object at an s3:// location.
func (c *Client) Fetch(ctx context.Context, location string) ([]byte, error) {
	bucket, key, err := ParseURI(location)
	if err != nil {
		return nil, err
	}
	if bucket == "" {
		bucket = c.bucket
	}
	if bucket == "" {
		return nil, fmt.Errorf("no bucket for %q and no default bucket configured", location)
	}
	return c.Download(ctx, bucket, key)
}

// Download fetches an object, retrying transient failures with linear backoff.
func (c *Client) Download(ctx context.Context, bucket, key string) ([]byte, error) {
	var lastErr error
	for i := 0; i < c.attempts; i++ {
		data, err := c.download(ctx, bucket, key)
		if err == nil {
			return data, nil
		}
		lastErr = err
		if errors.Is(err, errTooLarge) || ctx.Err() != nil || i == c.attempts-1 {
			break
		}
		slog.Debug("object download failed",
			slog.String("bucket", bucket), slog.String("key", key),
			slog.Int("attempt", i+1), slog.Any("error", err))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.backoff * time.Duration(i+1)):
		}
	}
	return nil, fmt.Errorf("download s3://%s/%s: %w", bucket, key, lastErr)
}

var errTooLarge = fmt.Errorf("object larger than %d bytes", MaxObjectSize)

func (c *Client) download(ctx context.Context, bucket, key string) ([]byte, error) {
	out, err := c.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer out.Body.Close()

	buf := new(bytes.Buffer)
	n, err := io.Copy(buf, io.LimitReader(out.Body, MaxObjectSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}
	if n > MaxObjectSize {
		return nil, errTooLarge
	}
	return buf.Bytes(), nil
}
