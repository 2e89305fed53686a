package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/questx-lab/fittrack/config"
)

type s3Storage struct {
	uploader *s3manager.Uploader
}

func NewS3Storage(cfg config.S3Configs) (*s3Storage, error) {
	awsCfg := &aws.Config{
		Region:           aws.String(cfg.Region),
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		S3ForcePathStyle: aws.Bool(true),
		DisableSSL:       aws.Bool(cfg.SSLDisabled),
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, err
	}

	return &s3Storage{uploader: s3manager.NewUploader(sess)}, nil
}

// Upload writes the object under its key. Keys are deterministic, so a retry
// overwrites the previous copy instead of duplicating it.
func (s *s3Storage) Upload(ctx context.Context, obj *Object) (*Location, error) {
	input := &s3manager.UploadInput{
		Bucket:      aws.String(obj.Bucket),
		Key:         aws.String(obj.Key),
		Body:        bytes.NewReader(obj.Data),
		ContentType: aws.String(obj.ContentType),
	}
	if len(obj.Metadata) > 0 {
		input.Metadata = aws.StringMap(obj.Metadata)
	}

	out, err := s.uploader.UploadWithContext(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("cannot upload %s/%s: %w", obj.Bucket, obj.Key, err)
	}

	return &Location{Bucket: obj.Bucket, Key: obj.Key, URL: out.Location}, nil
}
