// File: travelgo/api/multipart.go
package api

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// Upload is an attached file in a multipart write (avatar, tour image).
type Upload struct {
	FileName    string
	ContentType string
	Reader      io.Reader
}

type formField struct {
	name  string
	value string
}

// encodeMultipart builds the multipart body for the API's form
// endpoints. Empty field values are skipped so partial updates stay
// partial; a nil upload sends no file part.
func encodeMultipart(fields []formField, fileField string, up *Upload) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if err := writer.WriteField(f.name, f.value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f.name, err)
		}
	}

	if up != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name=%q; filename=%q`, fileField, escapeQuotes(up.FileName)))
		contentType := up.ContentType
		if contentType == "" {
			contentType = "image/jpeg"
		}
		header.Set("Content-Type", contentType)

		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("create file part: %w", err)
		}
		if _, err := io.Copy(part, up.Reader); err != nil {
			return nil, "", fmt.Errorf("copy file part: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return body, writer.FormDataContentType(), nil
}

func escapeQuotes(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}
