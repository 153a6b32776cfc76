package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"sort"
	"strings"

	"github.com/bnema/petcare-cli/internal/ports"
)

const defaultFileField = "file"

// encodedBody is a request body rendered once so it can be replayed after a
// token refresh.
type encodedBody struct {
	contentType string
	data        []byte
}

func (b encodedBody) reader() io.Reader {
	if b.data == nil {
		return nil
	}
	return bytes.NewReader(b.data)
}

func encodeBody(req ports.Request) (encodedBody, error) {
	if req.Form != nil {
		return encodeForm(*req.Form)
	}
	if req.Body == nil {
		return encodedBody{}, nil
	}

	data, err := json.Marshal(req.Body)
	if err != nil {
		return encodedBody{}, fmt.Errorf("encode request body: %w", err)
	}
	return encodedBody{contentType: "application/json", data: data}, nil
}

func encodeForm(form ports.Form) (encodedBody, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	names := make([]string, 0, len(form.Fields))
	for name := range form.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := writer.WriteField(name, form.Fields[name]); err != nil {
			return encodedBody{}, fmt.Errorf("write form field %q: %w", name, err)
		}
	}

	for _, file := range form.Files {
		field := strings.TrimSpace(file.Field)
		if field == "" {
			field = defaultFileField
		}
		if file.Content == nil {
			return encodedBody{}, fmt.Errorf("form file %q has no content", field)
		}

		part, err := writer.CreateFormFile(field, file.FileName)
		if err != nil {
			return encodedBody{}, fmt.Errorf("create form file %q: %w", field, err)
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return encodedBody{}, fmt.Errorf("copy form file %q: %w", field, err)
		}
	}

	if err := writer.Close(); err != nil {
		return encodedBody{}, fmt.Errorf("close multipart body: %w", err)
	}

	return encodedBody{contentType: writer.FormDataContentType(), data: buf.Bytes()}, nil
}
