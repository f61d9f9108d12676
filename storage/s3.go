package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Object is a stored file.
type Object struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}

// Config points the store at an S3-compatible endpoint. For Supabase that is
// https://<project>.supabase.co/storage/v1/s3 with the bucket's public URL
// https://<project>.supabase.co/storage/v1/object/public/<bucket>.
type Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string
}

func (c Config) validate() error {
	var missing []string
	if c.Bucket == "" {
		missing = append(missing, "bucket")
	}
	if c.PublicURL == "" {
		missing = append(missing, "public url")
	}
	if c.AccessKey == "" || c.SecretKey == "" {
		missing = append(missing, "credentials")
	}
	if len(missing) > 0 {
		return fmt.Errorf("storage config missing %s", strings.Join(missing, ", "))
	}
	return nil
}

// S3Store uploads objects to one bucket and hands out their public URLs.
type S3Store struct {
	client    *s3.Client
	bucket    string
	publicURL string
	logger    zerolog.Logger
}

func NewS3Store(ctx context.Context, cfg Config) (*S3Store, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewS3StoreWithClient(client, cfg.Bucket, cfg.PublicURL), nil
}

func NewS3StoreWithClient(client *s3.Client, bucket, publicURL string) *S3Store {
	return &S3Store{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
		logger:    log.With().Str("service", "storage").Str("bucket", bucket).Logger(),
	}
}

// Upload stores body under name. It never overwrites: if the key is
// already taken the store answers 412 and Upload fails.
func (s *S3Store) Upload(ctx context.Context, name, contentType string, body io.Reader, size int64) (Object, error) {
	if name == "" {
		return Object{}, errors.New("object name is empty")
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:         aws.String(name),
		Body:        body,
		IfNoneMatch: aws.String("*"),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return Object{}, fmt.Errorf("failed to upload %s: %w", name, err)
	}

	s.logger.Debug().Str("key", name).Int64("size", size).Msg("object stored")
	return Object{Bucket: s.bucket, Key: name}, nil
}

// PublicURL returns the anonymous URL of a stored object.
func (s *S3Store) PublicURL(obj Object) string {
	return PublicURL(s.publicURL, obj.Key)
}

// PublicURL joins a bucket's public base URL and an object key.
func PublicURL(base, key string) string {
	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.Join(segments, "/")
}
