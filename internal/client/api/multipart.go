package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
)

// formField is one text field of a multipart body. Repeated names are
// allowed (the backend reads keywords and attachments as arrays).
type formField struct {
	name  string
	value string
}

// formFile is one file part of a multipart body.
type formFile struct {
	field    string
	fileName string
	data     []byte
}

// buildMultipart renders fields and files into a multipart/form-data body.
// The body is returned as bytes so the transport can resend it verbatim
// after a refresh-and-retry cycle.
func buildMultipart(fields []formField, files []formFile) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", fmt.Errorf("writing field %q: %w", f.name, err)
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.field, f.fileName)
		if err != nil {
			return nil, "", fmt.Errorf("creating file part %q: %w", f.field, err)
		}
		if _, err := part.Write(f.data); err != nil {
			return nil, "", fmt.Errorf("writing file part %q: %w", f.field, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("finalizing multipart body: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

// sendMultipart issues a request with a multipart/form-data body.
func (c *HTTPClient) sendMultipart(ctx context.Context, method, path string, fields []formField, files []formFile, out any) error {
	body, contentType, err := buildMultipart(fields, files)
	if err != nil {
		return err
	}
	return c.do(ctx, call{
		method:      method,
		path:        path,
		body:        body,
		contentType: contentType,
	}, out)
}
