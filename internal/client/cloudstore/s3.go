package cloudstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/cdot/divelog/internal/client/models"
	"github.com/cdot/divelog/internal/common"
)

// S3 writes a batch as one date-partitioned CSV object. A fresh object key
// per attempt makes retried batches land as duplicate objects instead of
// overwrites, which satisfies the at-least-once contract trivially.
//
// Key fields: 1 = "access:secret" credentials, 2 = bucket, 3 = region
// (optional, defaults to us-east-1), 4 = custom endpoint (optional, for
// MinIO-style deployments).
type S3 struct {
	key Key
	now func() time.Time
}

func NewS3(key Key, _ Options) *S3 {
	return &S3{key: key, now: time.Now}
}

func (s *S3) CanUpload() bool {
	access, secret, ok := strings.Cut(s.key.Field(1), ":")
	return ok && access != "" && secret != "" && s.key.Field(2) != ""
}

func (s *S3) objectKey() string {
	d := s.now()
	return fmt.Sprintf("uploads/%d/%02d/%02d/%v.csv", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *S3) Upload(ctx context.Context, rows []models.Row) error {
	body, err := MarshalCSV(rows)
	if err != nil {
		return err
	}

	access, secret, _ := strings.Cut(s.key.Field(1), ":")
	region := s.key.Field(3)
	if region == "" {
		region = "us-east-1"
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(access, secret, "")))
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrAuthFailure, err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint := s.key.Field(4); endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	bucket := s.key.Field(2)
	key := s.objectKey()

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        strings.NewReader(body),
		ContentType: aws.String("text/csv; charset=UTF-8"),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrTransportFailure, err)
	}
	return nil
}
