package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
)

var unsafeNameChars = regexp.MustCompile(`(?i)[^a-z0-9.]`)

// ObjectName builds the stored name for an uploaded file:
// <unix millis>-<uuid>-<original name>, where every character of the original
// name outside [a-zA-Z0-9.] is replaced by an underscore.
func ObjectName(original string, now time.Time) string {
	base := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	if base == "." || base == "/" {
		base = "file"
	}
	return fmt.Sprintf("%d-%s-%s", now.UnixMilli(), uuid.NewString(), unsafeNameChars.ReplaceAllString(base, "_"))
}

// LocalStorage stores objects under <base>/<bucket> and serves them from
// <publicPrefix>/<bucket>/<name>.
type LocalStorage struct {
	base         string
	bucket       string
	publicPrefix string
}

var _ Storage = (*LocalStorage)(nil)

func NewLocalStorage(base, bucket, publicPrefix string) (*LocalStorage, error) {
	if _, err := ensureBucketPath(base, bucket); err != nil {
		return nil, err
	}
	return &LocalStorage{base: base, bucket: bucket, publicPrefix: strings.TrimRight(publicPrefix, "/")}, nil
}

func ensureBucketPath(base, bucket string) (string, error) {
	path := filepath.Join(base, bucket)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", err
	}
	return path, nil
}

// Root is the directory holding the bucket's objects.
func (s *LocalStorage) Root() string {
	return filepath.Join(s.base, s.bucket)
}

func (s *LocalStorage) Upload(ctx context.Context, name, _ string, body io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("gateway: invalid object name %q", name)
	}
	target := filepath.Join(s.Root(), name)
	file, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	size, err := io.Copy(file, body)
	closeErr := file.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && size == 0 {
		err = errors.New("gateway: empty upload")
	}
	if err != nil {
		_ = os.Remove(target)
		return "", err
	}
	return name, nil
}

func (s *LocalStorage) PublicURL(name string) string {
	return s.publicPrefix + "/" + s.bucket + "/" + name
}

// GCSStorage stores objects in a Google Cloud Storage bucket that is
// publicly readable.
type GCSStorage struct {
	client *storage.Client
	bucket string
}

var _ Storage = (*GCSStorage)(nil)

// NewGCSStorage uses application default credentials.
func NewGCSStorage(ctx context.Context, bucket string) (*GCSStorage, error) {
	if bucket == "" {
		return nil, errors.New("gateway: GCS bucket name is required")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return &GCSStorage{client: client, bucket: bucket}, nil
}

func (s *GCSStorage) Upload(ctx context.Context, name, contentType string, body io.Reader) (string, error) {
	object := s.client.Bucket(s.bucket).Object(name).If(storage.Conditions{DoesNotExist: true})
	writer := object.NewWriter(ctx)
	if contentType != "" {
		writer.ContentType = contentType
	}
	if _, err := io.Copy(writer, body); err != nil {
		_ = writer.Close()
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}
	return name, nil
}

func (s *GCSStorage) PublicURL(name string) string {
	return "https://storage.googleapis.com/" + s.bucket + "/" + name
}

func (s *GCSStorage) Close() error {
	return s.client.Close()
}
