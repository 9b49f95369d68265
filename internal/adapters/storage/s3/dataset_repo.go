package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"shelter-registry/internal/domain/shelters"
	"shelter-registry/internal/platform/httpclient"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// DatasetRepo guarda el documento completo como un único objeto S3 (AWS o MinIO).
// PutObject reemplaza el objeto de forma atómica para los lectores.
type DatasetRepo struct {
	client *s3.Client
	bucket string
	key    string
}

// Config: parámetros explícitos. Las credenciales salen de la default chain
// (AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY / AWS_SESSION_TOKEN, perfiles, IMDS).
type Config struct {
	Bucket    string
	Key       string
	Region    string
	Endpoint  string // opcional (MinIO)
	PathStyle bool
	Timeout   time.Duration // default httpclient.DefaultTimeout

	// HTTPClient opcional (tests); si es nil se arma con httpclient.New(Timeout)
	HTTPClient aws.HTTPClient
}

func New(ctx context.Context, cfg Config, optFns ...func(*config.LoadOptions) error) (*DatasetRepo, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	key := strings.TrimSpace(cfg.Key)
	if key == "" {
		key = "shelters_data.json"
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = httpclient.New(cfg.Timeout)
	}

	loadOpts := append([]func(*config.LoadOptions) error{config.WithRegion(region)}, optFns...)
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.HTTPClient = httpClient
	})
	return &DatasetRepo{client: client, bucket: cfg.Bucket, key: key}, nil
}

func (r *DatasetRepo) Load(ctx context.Context) ([]*shelters.Shelter, error) {
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{Bucket: &r.bucket, Key: &r.key})
	if err != nil {
		if isNotFound(err) {
			return []*shelters.Shelter{}, nil
		}
		return nil, fmt.Errorf("get s3://%s/%s: %w", r.bucket, r.key, err)
	}
	defer out.Body.Close()

	raw, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read s3://%s/%s: %w", r.bucket, r.key, err)
	}
	return shelters.DecodeDocument(raw)
}

func (r *DatasetRepo) Save(ctx context.Context, items []*shelters.Shelter) error {
	doc, err := shelters.EncodeDocument(items)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	_, err = r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        &r.bucket,
		Key:           &r.key,
		Body:          bytes.NewReader(doc),
		ContentLength: aws.Int64(int64(len(doc))),
		ContentType:   aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", r.bucket, r.key, err)
	}
	return nil
}

func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	// NoSuchBucket también es 404 pero no significa "documento inexistente"
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		case "NoSuchBucket":
			return false
		}
	}
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() == http.StatusNotFound {
		return true
	}
	return false
}
