package app

import (
	"bytes"
	"context"
	"errors"
	"io"

	"dnl-site-backend-go/internal/gateway"
	"dnl-site-backend-go/internal/logger"
)

// Upload is a file chosen by the user that has not been stored yet.
type Upload struct {
	Filename    string
	ContentType string
	Open        func() (io.ReadCloser, error)
}

// BytesUpload wraps in-memory content as an Upload.
func BytesUpload(filename, contentType string, data []byte) Upload {
	return Upload{
		Filename:    filename,
		ContentType: contentType,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// UploadImage stores a file in the public bucket and returns its public URL.
// ok is false when the upload failed; the failure is logged.
func (s *State) UploadImage(ctx context.Context, u Upload) (string, bool) {
	url, err := s.upload(ctx, u)
	if err != nil {
		logger.Warn("[app][upload] %s: %v", u.Filename, err)
		return "", false
	}
	return url, true
}

func (s *State) upload(ctx context.Context, u Upload) (string, error) {
	if u.Open == nil {
		return "", errors.New("no content")
	}
	body, err := u.Open()
	if err != nil {
		return "", err
	}
	defer body.Close()
	name, err := s.storage.Upload(ctx, gateway.ObjectName(u.Filename, s.now()), u.ContentType, body)
	if err != nil {
		return "", err
	}
	return s.storage.PublicURL(name), nil
}
