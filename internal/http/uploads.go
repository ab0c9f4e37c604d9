package httpapi

import (
	"io"
	"mime/multipart"
	"net/http"

	"dnl-site-backend-go/internal/app"
)

// fileUpload defers opening the multipart part until the state stores it.
func fileUpload(header *multipart.FileHeader) app.Upload {
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return app.Upload{
		Filename:    header.Filename,
		ContentType: contentType,
		Open: func() (io.ReadCloser, error) {
			return header.Open()
		},
	}
}

func formFiles(r *http.Request, field string) []app.Upload {
	if r.MultipartForm == nil {
		return nil
	}
	headers := r.MultipartForm.File[field]
	uploads := make([]app.Upload, 0, len(headers))
	for _, h := range headers {
		if h.Size == 0 {
			continue
		}
		uploads = append(uploads, fileUpload(h))
	}
	return uploads
}

func formFile(r *http.Request, field string) *app.Upload {
	files := formFiles(r, field)
	if len(files) == 0 {
		return nil
	}
	return &files[0]
}

// parseForm accepts both multipart and urlencoded bodies.
func parseForm(r *http.Request) error {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil && err != http.ErrNotMultipart {
		return err
	}
	return r.ParseForm()
}
