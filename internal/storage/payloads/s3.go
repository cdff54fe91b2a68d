package payloads

import (
	"context"
	"fmt"
	"io"
	"time"

	app_config "github.com/bisweshmaharana/blizz-share/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const downloadURLExpiry = 15 * time.Minute

// PayloadStorage is the object store behind share files. Callers only ever
// see opaque storage keys and temporary presigned URLs, never bucket paths.
type PayloadStorage interface {
	Put(ctx context.Context, reader io.Reader, sizeBytes int64) (string, error)
	PresignGet(ctx context.Context, storageKey string, filename string) (string, error)
	Delete(ctx context.Context, storageKey string) error
}

type S3PayloadStorage struct {
	client        *s3.Client
	presignClient *s3.PresignClient
	bucket        string
}

func NewS3PayloadStorage(env *app_config.Env) (*S3PayloadStorage, error) {
	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(env.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			env.S3AccessKey,
			env.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load S3 config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if env.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(env.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &S3PayloadStorage{
		client:        client,
		presignClient: s3.NewPresignClient(client),
		bucket:        env.S3Bucket,
	}, nil
}

// Put streams the payload into the bucket under a fresh date-partitioned
// key and returns that key.
func (s *S3PayloadStorage) Put(
	ctx context.Context,
	reader io.Reader,
	sizeBytes int64,
) (string, error) {
	key := generateStorageKey()

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        &s.bucket,
		Key:           &key,
		Body:          reader,
		ContentLength: aws.Int64(sizeBytes),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload payload: %w", err)
	}

	return key, nil
}

// PresignGet returns a time-bounded download URL for the stored payload.
// The Content-Disposition override makes browsers save the file under its
// original name instead of the storage key.
func (s *S3PayloadStorage) PresignGet(
	ctx context.Context,
	storageKey string,
	filename string,
) (string, error) {
	disposition := fmt.Sprintf("attachment; filename=%q", filename)

	req, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket:                     &s.bucket,
		Key:                        &storageKey,
		ResponseContentDisposition: &disposition,
	}, s3.WithPresignExpires(downloadURLExpiry))
	if err != nil {
		return "", fmt.Errorf("failed to presign download URL: %w", err)
	}

	return req.URL, nil
}

func (s *S3PayloadStorage) Delete(ctx context.Context, storageKey string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.bucket,
		Key:    &storageKey,
	})
	if err != nil {
		return fmt.Errorf("failed to delete payload: %w", err)
	}

	return nil
}

func generateStorageKey() string {
	d := time.Now().UTC()
	return fmt.Sprintf("shares/%d/%02d/%02d/%s", d.Year(), d.Month(), d.Day(), uuid.New())
}
