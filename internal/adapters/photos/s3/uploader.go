package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
)

// s3API es el subset de *s3.Client que usamos.
type s3API interface {
	PutObject(ctx context.Context, in *awss3.PutObjectInput, optFns ...func(*awss3.Options)) (*awss3.PutObjectOutput, error)
}

type Config struct {
	Bucket string
	Region string

	// Endpoint custom (MinIO/LocalStack). Si está seteado se usa path-style.
	Endpoint string

	// PublicBaseURL reemplaza la URL del bucket (ej: un CDN delante).
	PublicBaseURL string
}

// Uploader implementa pets.PhotoStore sobre S3.
type Uploader struct {
	api s3API
	cfg Config
}

func NewUploader(api s3API, cfg Config) (*Uploader, error) {
	if api == nil {
		return nil, errors.New("s3: api must not be nil")
	}
	cfg.Bucket = strings.TrimSpace(cfg.Bucket)
	if cfg.Bucket == "" {
		return nil, errors.New("s3: bucket must not be empty")
	}
	if strings.TrimSpace(cfg.Region) == "" {
		cfg.Region = "us-east-1"
	}
	cfg.Endpoint = strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")
	cfg.PublicBaseURL = strings.TrimRight(strings.TrimSpace(cfg.PublicBaseURL), "/")
	return &Uploader{api: api, cfg: cfg}, nil
}

// NewClient arma el *s3.Client a partir de la config AWS ya cargada.
func NewClient(awsCfg aws.Config, cfg Config) *awss3.Client {
	return awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		if cfg.Region != "" {
			o.Region = cfg.Region
		}
		if ep := strings.TrimSpace(cfg.Endpoint); ep != "" {
			o.BaseEndpoint = aws.String(ep)
			o.UsePathStyle = true
		}
	})
}

func (u *Uploader) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if key == "" {
		return "", errors.New("s3: key is required")
	}

	_, err := u.api.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:        aws.String(u.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("s3: put object %q: %w", key, err)
	}
	return u.ObjectURL(key), nil
}

func (u *Uploader) ObjectURL(key string) string {
	switch {
	case u.cfg.PublicBaseURL != "":
		return u.cfg.PublicBaseURL + "/" + key
	case u.cfg.Endpoint != "":
		return fmt.Sprintf("%s/%s/%s", u.cfg.Endpoint, u.cfg.Bucket, key)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.cfg.Bucket, u.cfg.Region, key)
	}
}
