package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/campusboard/backend/config"
)

// Keys embed the upload time, an object is never overwritten.
const immutableCacheControl = "public, max-age=31536000, immutable"

type s3Storage struct {
	uploader *s3manager.Uploader
	cfg      config.S3Configs
}

func NewS3Storage(cfg config.S3Configs) (*s3Storage, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:           aws.String(cfg.Region),
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		Endpoint:         aws.String(cfg.Endpoint),
		S3ForcePathStyle: aws.Bool(true),
		DisableSSL:       aws.Bool(cfg.SSLDisabled),
	})
	if err != nil {
		return nil, err
	}

	return &s3Storage{
		uploader: s3manager.NewUploader(sess),
		cfg:      cfg,
	}, nil
}

func (s *s3Storage) Upload(ctx context.Context, object *UploadObject) (*UploadResponse, error) {
	_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(object.Bucket),
		Key:         aws.String(object.Key),
		Body:        bytes.NewReader(object.Data),
		ACL:          aws.String("public-read"),
		ContentType:  aws.String(object.Mime),
		CacheControl: aws.String(immutableCacheControl),
	})
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w, bucket %s, key %s", err, object.Bucket, object.Key)
	}

	endpoint := s.cfg.PublicEndpoint
	if endpoint == "" {
		endpoint = s.cfg.Endpoint
	}

	return &UploadResponse{
		Url: PublicURL(endpoint, object.Bucket, object.Key),
		Key: object.Key,
	}, nil
}

// PublicURL builds a path-style URL, escaping each segment of key.
func PublicURL(endpoint, bucket, key string) string {
	segments := strings.Split(key, "/")
	for i := range segments {
		segments[i] = url.PathEscape(segments[i])
	}

	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(endpoint, "/"), bucket, strings.Join(segments, "/"))
}
