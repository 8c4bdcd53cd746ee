package testutil

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
)

// NewMultipartRequest builds a POST request carrying one file part and the
// given plain values.
func NewMultipartRequest(
	field, filename, mime string, data []byte, values map[string]string,
) *http.Request {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, field, filename))
	header.Set("Content-Type", mime)
	part, err := writer.CreatePart(header)
	if err != nil {
		panic(err)
	}

	if _, err := part.Write(data); err != nil {
		panic(err)
	}

	for k, v := range values {
		if err := writer.WriteField(k, v); err != nil {
			panic(err)
		}
	}

	if err := writer.Close(); err != nil {
		panic(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}
