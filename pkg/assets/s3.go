package assets

import (
	"time"

	"catalog/pkg/config"

	"github.com/gofiber/storage/s3/v2"
)

// S3Store keeps blobs in an S3 (or MinIO) bucket. Namespaces map to
// key prefixes, so EnsureNamespace has nothing to create.
type S3Store struct {
	bucket *s3.Storage
}

func NewS3Store(cfg *config.AppConfig) *S3Store {
	bucket := s3.New(s3.Config{
		Endpoint: cfg.AWSEndpoint,
		Bucket:   cfg.AWSBucket,
		Region:   cfg.AWSDefaultRegion,
		Credentials: s3.Credentials{
			AccessKey:       cfg.AWSAccessKey,
			SecretAccessKey: cfg.AWSSecretKey,
		},
		MaxAttempts:    3,
		RequestTimeout: time.Second * 10,
		Reset:          false,
	})

	return &S3Store{
		bucket: bucket,
	}
}

func (s *S3Store) EnsureNamespace(namespace string) error {
	return nil
}

func (s *S3Store) Write(namespace, fileName string, data []byte) (string, error) {
	if err := s.bucket.Set(objectKey(namespace, fileName), data, 0); err != nil {
		return "", err
	}
	return LogicalPath(namespace, fileName), nil
}

func (s *S3Store) Delete(namespace, fileName string) error {
	key := objectKey(namespace, fileName)

	data, err := s.bucket.Get(key)
	if err != nil {
		return err
	}
	if data == nil {
		return ErrNotFound
	}

	return s.bucket.Delete(key)
}

func (s *S3Store) Exists(namespace, fileName string) (bool, error) {
	data, err := s.bucket.Get(objectKey(namespace, fileName))
	if err != nil {
		return false, err
	}
	return data != nil, nil
}

func objectKey(namespace, fileName string) string {
	return namespace + "/" + fileName
}
