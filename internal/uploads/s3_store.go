package uploads

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/handyfix/lead-intake/internal/intake"
	"github.com/handyfix/lead-intake/pkg/logging"
)

// S3API is the subset of the S3 client used by Store.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Store uploads lead photos to S3 and hands back public URLs.
type Store struct {
	bucket        string
	keyPrefix     string
	publicBaseURL string
	s3Client      S3API
	logger        *logging.Logger
	now           func() time.Time
}

// NewStore creates a photo store. If bucket is empty, uploads fail loudly
// rather than silently dropping photos.
func NewStore(s3Client S3API, bucket, keyPrefix, publicBaseURL string, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{
		bucket:        bucket,
		keyPrefix:     strings.Trim(keyPrefix, "/"),
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		s3Client:      s3Client,
		logger:        logger,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Enabled reports whether the store has a bucket and client configured.
func (s *Store) Enabled() bool {
	return s != nil && s.bucket != "" && s.s3Client != nil
}

// Upload stores each file under a date-partitioned key and returns one URL
// per file, in input order. A failed put aborts the batch; the caller retries
// the whole set.
func (s *Store) Upload(ctx context.Context, files []intake.File) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}
	if !s.Enabled() {
		return nil, fmt.Errorf("uploads: photo bucket not configured")
	}

	urls := make([]string, 0, len(files))
	for _, f := range files {
		key := s.objectKey(f.Name)
		_, err := s.s3Client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(f.Data),
			ContentType: aws.String(f.ContentType),
		})
		if err != nil {
			return nil, fmt.Errorf("uploads: s3 put %s: %w", key, err)
		}
		s.logger.Info("photo uploaded", "s3_key", key, "bytes", len(f.Data))
		urls = append(urls, s.publicURL(key))
	}
	return urls, nil
}

func (s *Store) objectKey(filename string) string {
	now := s.now()
	ext := strings.ToLower(path.Ext(filename))
	key := fmt.Sprintf("%d/%02d/%02d/%s%s", now.Year(), now.Month(), now.Day(), uuid.NewString(), ext)
	if s.keyPrefix != "" {
		key = s.keyPrefix + "/" + key
	}
	return key
}

func (s *Store) publicURL(key string) string {
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
}
