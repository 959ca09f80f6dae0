package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
)

// S3Config points at an S3-compatible bucket (AWS or MinIO).
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	Prefix    string
}

type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) objectPutter {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// S3Remote stores every note as a JSON object <prefix>/notes/<id>.json.
// Tombstones are written too, with "deleted": true.
type S3Remote struct {
	client objectPutter
	bucket string
	prefix string
}

func NewS3(ctx context.Context, c S3Config) (*S3Remote, error) {
	if c.Bucket == "" {
		return nil, fmt.Errorf("s3 remote: bucket is required")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(c.Region)}
	if c.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, "")))
	}
	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Remote{client: client, bucket: c.Bucket, prefix: c.Prefix}, nil
}

func (r *S3Remote) Name() string { return KindS3 }

func (r *S3Remote) Key(noteID string) string {
	return path.Join(r.prefix, "notes", noteID+".json")
}

func (r *S3Remote) Push(ctx context.Context, notes []models.Note) error {
	for _, n := range notes {
		body, err := json.Marshal(toDocument(n))
		if err != nil {
			return fmt.Errorf("failed to encode note %s: %w", n.ID, err)
		}
		_, err = r.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(r.bucket),
			Key:         aws.String(r.Key(n.ID)),
			Body:        bytes.NewReader(body),
			ContentType: aws.String("application/json"),
		})
		if err != nil {
			return fmt.Errorf("failed to put note %s: %w", n.ID, err)
		}
	}
	return nil
}
