package application

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/bnema/petcare-cli/internal/ports"
)

// Upload is a single file sent as multipart form data.
type Upload struct {
	FileName string
	Content  io.Reader
	// Fields are sent as individual scalar form fields next to the file.
	Fields map[string]string
}

func (u Upload) form(field string) (*ports.Form, error) {
	if u.Content == nil {
		return nil, fmt.Errorf("%s upload has no content", field)
	}

	return &ports.Form{
		Fields: u.Fields,
		Files:  []ports.FormFile{{Field: field, FileName: u.FileName, Content: u.Content}},
	}, nil
}

func resourcePath(segments ...string) string {
	var b strings.Builder
	for _, segment := range segments {
		b.WriteByte('/')
		b.WriteString(segment)
	}
	return b.String()
}

func requireID(kind string, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("%s id is required", kind)
	}
	return url.PathEscape(id), nil
}

func setQuery(values url.Values, key string, value string) {
	if value = strings.TrimSpace(value); value != "" {
		values.Set(key, value)
	}
}
