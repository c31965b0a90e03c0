package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/Pranaysalavadhi/medic-connect-online/internal/config"
)

// S3API is the subset of the S3 client used by RecordStore.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// RecordStore keeps health-record files in object storage. With no bucket
// configured the store is disabled and uploads are refused.
type RecordStore struct {
	bucket string
	region string
	client S3API
}

func NewRecordStore(client S3API, bucket, region string) *RecordStore {
	return &RecordStore{bucket: bucket, region: region, client: client}
}

// NewRecordStoreFromConfig builds the S3 client out of static credentials.
func NewRecordStoreFromConfig(cfg *config.Config) *RecordStore {
	if cfg.RecordsBucket == "" {
		return NewRecordStore(nil, "", cfg.AWSRegion)
	}

	client := s3.New(s3.Options{
		Region: cfg.AWSRegion,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKey,
			cfg.AWSSecretKey,
			"",
		),
	})

	return NewRecordStore(client, cfg.RecordsBucket, cfg.AWSRegion)
}

func (s *RecordStore) Enabled() bool {
	return s != nil && s.bucket != "" && s.client != nil
}

// Put uploads the file and returns its storage key and public URL.
func (s *RecordStore) Put(
	ctx context.Context,
	patientID uint,
	fileName string,
	contentType string,
	body io.Reader,
) (key string, url string, err error) {

	if !s.Enabled() {
		return "", "", fmt.Errorf("record storage not configured")
	}

	key = fmt.Sprintf("records/%d/%s/%s", patientID, uuid.NewString(), path.Base(fileName))

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", "", fmt.Errorf("record storage: put %s: %w", key, err)
	}

	url = fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
	return key, url, nil
}

// Delete removes the object behind a record. Best effort: a failure is
// logged and reported, the caller decides whether the row still goes.
func (s *RecordStore) Delete(ctx context.Context, key string) error {
	if !s.Enabled() || key == "" {
		return nil
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		log.Printf("record storage: delete %s: %v", key, err)
	}
	return err
}
