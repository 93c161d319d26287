package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3 stores objects in an S3-compatible bucket.
type S3 struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewS3(ctx context.Context, opts Options) (*S3, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("storage/s3: bucket is not configured")
	}
	region := opts.Region
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*awscfg.LoadOptions) error{awscfg.WithRegion(region)}
	if opts.Key != "" && opts.Secret != "" {
		loadOpts = append(loadOpts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.Key, opts.Secret, ""),
		))
	}
	cfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("storage/s3: load config: %w", err)
	}

	var clientOpts []func(*s3.Options)
	if opts.Endpoint != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		})
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", opts.Bucket, region)
	}

	return &S3{
		client:  s3.NewFromConfig(cfg, clientOpts...),
		bucket:  opts.Bucket,
		baseURL: baseURL,
	}, nil
}

func (d *S3) Put(ctx context.Context, path string, r io.Reader, contentType string, overwrite bool) error {
	if !overwrite {
		exists, err := d.exists(ctx, path)
		if err != nil {
			return err
		}
		if exists {
			return ErrExists
		}
	}

	in := &s3.PutObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(path),
		Body:   r,
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}
	if _, err := d.client.PutObject(ctx, in); err != nil {
		return fmt.Errorf("storage/s3: put %s: %w", path, err)
	}
	return nil
}

func (d *S3) exists(ctx context.Context, path string) (bool, error) {
	_, err := d.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(path),
	})
	if err == nil {
		return true, nil
	}
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return false, nil
	}
	return false, fmt.Errorf("storage/s3: head %s: %w", path, err)
}

func (d *S3) Delete(ctx context.Context, path string) error {
	_, err := d.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return fmt.Errorf("storage/s3: delete %s: %w", path, err)
	}
	return nil
}

func (d *S3) URL(path string) string {
	return d.baseURL + "/" + strings.TrimLeft(path, "/")
}
