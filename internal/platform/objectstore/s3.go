// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Options configures [NewS3]. Endpoint is set for S3-compatible providers
// (R2, MinIO); leave it empty for AWS.
type S3Options struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// S3Store implements [Store] on top of the AWS SDK v2 S3 client.
type S3Store struct {
	client *s3.Client
	bucket string
}

// NewS3 builds a client from the default AWS credential chain, overridden by
// static keys when both are supplied.
func NewS3(ctx context.Context, options S3Options, logger *slog.Logger) (*S3Store, error) {
	if options.Bucket == "" {
		return nil, errors.New("objectstore: bucket is required")
	}

	loaders := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(options.Region),
	}
	if options.AccessKeyID != "" && options.SecretAccessKey != "" {
		loaders = append(loaders, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(options.AccessKeyID, options.SecretAccessKey, ""),
		))
	}

	awsConfig, err := awsconfig.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, fmt.Errorf("objectstore: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if options.Endpoint != "" {
			o.BaseEndpoint = aws.String(options.Endpoint)
			o.UsePathStyle = true
		}
	})

	logger.Info("objectstore_configured",
		slog.String("bucket", options.Bucket),
		slog.String("region", options.Region),
		slog.Bool("custom_endpoint", options.Endpoint != ""),
	)

	return &S3Store{client: client, bucket: options.Bucket}, nil
}

// Put implements [Store].
func (store *S3Store) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	_, err := store.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(store.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
		CacheControl:  aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return fmt.Errorf("objectstore: put %q: %w", key, err)
	}
	return nil
}

// Copy implements [Store].
func (store *S3Store) Copy(ctx context.Context, src, dst string) error {
	_, err := store.client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(store.bucket),
		Key:        aws.String(dst),
		CopySource: aws.String(url.PathEscape(store.bucket + "/" + src)),
	})
	if err != nil {
		var missing *types.NoSuchKey
		if errors.As(err, &missing) {
			return ErrNotFound
		}
		return fmt.Errorf("objectstore: copy %q: %w", src, err)
	}
	return nil
}

// Delete implements [Store].
func (store *S3Store) Delete(ctx context.Context, key string) error {
	_, err := store.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(store.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("objectstore: delete %q: %w", key, err)
	}
	return nil
}

// Ping checks that the bucket is reachable with the configured credentials.
func (store *S3Store) Ping(ctx context.Context) error {
	if _, err := store.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(store.bucket)}); err != nil {
		return fmt.Errorf("objectstore: head bucket: %w", err)
	}
	return nil
}
