package ports

import (
	"context"
	"io"
	"net/http"
	"net/url"
)

type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	// Body is sent as JSON unless Form is set.
	Body any
	Form *Form
	// Anonymous requests never carry a bearer token and never trigger a refresh.
	Anonymous bool
}

type Form struct {
	Fields map[string]string
	Files  []FormFile
}

type FormFile struct {
	// Field defaults to "file".
	Field    string
	FileName string
	Content  io.Reader
}

type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

type APIClient interface {
	// Do decodes a JSON success body into out when out is non-nil.
	Do(ctx context.Context, req Request, out any) (*Response, error)
}
