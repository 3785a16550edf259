package cloudsync

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/ghuser/organcare/services/organ/domain/models"
)

// S3Config configures the S3 driver. Endpoint switches to an S3-compatible
// server such as MinIO with path-style addressing. Without explicit keys the
// default AWS credential chain is used.
type S3Config struct {
	Region          string
	Bucket          string
	Key             string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// S3 keeps the document in an S3 bucket.
type S3 struct {
	client *s3.Client
	bucket string
	key    string
}

// NewS3 creates an S3 driver from cfg.
func NewS3(ctx context.Context, cfg S3Config) (*S3, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3: bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("s3: load config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewS3FromClient(client, cfg.Bucket, cfg.Key), nil
}

// NewS3FromClient wraps an existing client.
func NewS3FromClient(client *s3.Client, bucket, key string) *S3 {
	return &S3{client: client, bucket: bucket, key: key}
}

// Name implements repositories.CloudSync.
func (s *S3) Name() string { return "s3" }

// Pull implements repositories.CloudSync.
func (s *S3) Pull(ctx context.Context) (*models.AppState, bool, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{Bucket: &s.bucket, Key: &s.key})
	if err != nil {
		if isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("s3: get s3://%s/%s: %w", s.bucket, s.key, err)
	}
	defer out.Body.Close() //nolint:errcheck

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, false, fmt.Errorf("s3: read: %w", err)
	}
	st, err := models.DecodeState(data)
	if err != nil {
		return nil, false, fmt.Errorf("s3: %w", err)
	}
	return st, true, nil
}

// Push implements repositories.CloudSync.
func (s *S3) Push(ctx context.Context, state *models.AppState) error {
	data, err := encode(state)
	if err != nil {
		return err
	}
	if _, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &s.key,
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	}); err != nil {
		return fmt.Errorf("s3: put s3://%s/%s: %w", s.bucket, s.key, err)
	}
	return nil
}

// Close is a no-op; the SDK client holds no connection of its own.
func (s *S3) Close() error { return nil }

func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var re *awshttp.ResponseError
	return errors.As(err, &re) && re.HTTPStatusCode() == http.StatusNotFound
}
