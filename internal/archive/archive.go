// Package archive stores decoded records and batch outcomes in S3.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appconfig "futurewire/config"
	"futurewire/internal/batch"
	metrics "futurewire/internal/metrics"
	"futurewire/logger"
)

// PutObjectAPI is the part of *s3.Client the archiver needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Archiver writes objects under prefix/kind/YYYY/MM/DD/.
type S3Archiver struct {
	client  PutObjectAPI
	bucket  string
	prefix  string
	version string
	log     *logger.Log
	now     func() time.Time
}

// New wraps an existing client.
func New(client PutObjectAPI, bucket, prefix, version string) *S3Archiver {
	return &S3Archiver{
		client:  client,
		bucket:  bucket,
		prefix:  strings.Trim(prefix, "/"),
		version: version,
		log:     logger.GetLogger(),
		now:     time.Now,
	}
}

// NewS3Archiver builds an S3 client from cfg. Static credentials are used when
// both keys are set, otherwise the default AWS credential chain applies.
func NewS3Archiver(ctx context.Context, cfg appconfig.S3Config, version string) (*S3Archiver, error) {
	if !cfg.Enabled {
		return nil, fmt.Errorf("s3 storage disabled")
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretAccessKey,
				"",
			),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.PathStyle
	})
	return New(client, cfg.Bucket, cfg.Prefix, version), nil
}

// Key returns the object key for a batch file of kind written at t.
func (a *S3Archiver) Key(kind, batchID, ext string, t time.Time) string {
	t = t.UTC()
	parts := []string{
		strings.ToLower(kind),
		t.Format("2006"),
		t.Format("01"),
		t.Format("02"),
		batchID + ext,
	}
	if a.prefix != "" {
		parts = append([]string{a.prefix}, parts...)
	}
	return path.Join(parts...)
}

// Put stores records as a JSON array and returns the object key.
func (a *S3Archiver) Put(ctx context.Context, kind, batchID string, records []any) (string, error) {
	if records == nil {
		records = []any{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("encode %s records: %w", kind, err)
	}
	key := a.Key(kind, batchID, ".json", a.now())
	if err := a.upload(ctx, kind, key, "application/json", data, len(records)); err != nil {
		return "", err
	}
	return key, nil
}

// PutBatch stores the decoded records of res and, when any element failed,
// its outcome ledger. It returns the keys written.
func (a *S3Archiver) PutBatch(ctx context.Context, res *batch.Result) ([]string, error) {
	key, err := a.Put(ctx, res.Kind, res.BatchID, res.Values())
	if err != nil {
		return nil, err
	}
	keys := []string{key}
	if res.Failed == 0 {
		return keys, nil
	}

	data, err := encodeOutcomes(res, a.now())
	if err != nil {
		return keys, err
	}
	ledgerKey := a.Key(res.Kind, res.BatchID, ".outcomes.parquet", a.now())
	if err := a.upload(ctx, res.Kind, ledgerKey, "application/octet-stream", data, res.Total); err != nil {
		return keys, err
	}
	return append(keys, ledgerKey), nil
}

func (a *S3Archiver) upload(ctx context.Context, kind, key, contentType string, data []byte, count int) error {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		Metadata: map[string]string{
			"kind":               kind,
			"record-count":       fmt.Sprintf("%d", count),
			"futurewire-version": a.version,
		},
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()
	if _, err := a.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}

	a.log.WithComponent("archive").WithFields(logger.Fields{
		"bucket": a.bucket,
		"key":    key,
		"bytes":  len(data),
	}).Info("archived object")
	metrics.EmitArchiveMetric(a.log, kind, int64(len(data)))
	return nil
}
