package oembed

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strings"
	"testing"

	coreerrors "github.com/SadRunStuff/youtube-watcher/core/errors"
	"github.com/SadRunStuff/youtube-watcher/core/interfaces"
)

type mockHTTPClient struct {
	getFunc func(ctx context.Context, url string) (interfaces.Response, error)
}

func (m *mockHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, url)
	}
	return nil, nil
}

type mockResponse struct {
	statusCode int
	body       string
}

func (m *mockResponse) StatusCode() int        { return m.statusCode }
func (m *mockResponse) Body() io.ReadCloser    { return io.NopCloser(strings.NewReader(m.body)) }
func (m *mockResponse) Header(key string) string { return "" }

type nopLogger struct{}

func (nopLogger) Debug(msg string, fields map[string]interface{}) {}
func (nopLogger) Info(msg string, fields map[string]interface{})  {}
func (nopLogger) Warn(msg string, fields map[string]interface{})  {}
func (nopLogger) Error(msg string, fields map[string]interface{}) {}

func newClient(httpClient interfaces.HTTPClient) *Client {
	return NewClient(interfaces.Dependencies{
		HTTPClient: httpClient,
		Logger:     nopLogger{},
	})
}

func TestResolve_Success(t *testing.T) {
	var requestedURL string
	client := newClient(&mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			requestedURL = url
			return &mockResponse{
				statusCode: 200,
				body:       `{"title": "Cooking Rice", "author_name": "Kitchen Channel"}`,
			}, nil
		},
	})

	meta, err := client.Resolve(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	if meta.Title != "Cooking Rice" {
		t.Errorf("Title = %q, want Cooking Rice", meta.Title)
	}
	if meta.Author != "Kitchen Channel" {
		t.Errorf("Author = %q, want Kitchen Channel", meta.Author)
	}

	parsed, err := url.Parse(requestedURL)
	if err != nil {
		t.Fatalf("requested URL does not parse: %v", err)
	}
	if parsed.Host != "www.youtube.com" || parsed.Path != "/oembed" {
		t.Errorf("requested %s, want the oembed endpoint", requestedURL)
	}
	if got := parsed.Query().Get("url"); got != "https://www.youtube.com/watch?v=abc123" {
		t.Errorf("url param = %q", got)
	}
	if got := parsed.Query().Get("format"); got != "json" {
		t.Errorf("format param = %q, want json", got)
	}
}

func TestResolve_TransportError(t *testing.T) {
	client := newClient(&mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return nil, errors.New("connection refused")
		},
	})

	_, err := client.Resolve(context.Background(), "abc123")
	if !coreerrors.IsTransientLookup(err) {
		t.Errorf("Resolve = %v, want TransientLookupError", err)
	}
}

func TestResolve_Non200Status(t *testing.T) {
	// Private and deleted videos return 401/404 from oEmbed
	for _, status := range []int{401, 403, 404, 500} {
		client := newClient(&mockHTTPClient{
			getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
				return &mockResponse{statusCode: status, body: ""}, nil
			},
		})

		_, err := client.Resolve(context.Background(), "abc123")
		if !coreerrors.IsTransientLookup(err) {
			t.Errorf("status %d: Resolve = %v, want TransientLookupError", status, err)
		}
	}
}

func TestResolve_MalformedPayload(t *testing.T) {
	client := newClient(&mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return &mockResponse{statusCode: 200, body: "not json"}, nil
		},
	})

	_, err := client.Resolve(context.Background(), "abc123")
	if !coreerrors.IsTransientLookup(err) {
		t.Errorf("Resolve = %v, want TransientLookupError", err)
	}
}

func TestResolve_ErrorCarriesContentID(t *testing.T) {
	client := newClient(&mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return nil, errors.New("timeout")
		},
	})

	_, err := client.Resolve(context.Background(), "abc123")

	var lookupErr *coreerrors.TransientLookupError
	if !errors.As(err, &lookupErr) {
		t.Fatalf("Resolve = %T, want TransientLookupError", err)
	}
	if lookupErr.ContentID != "abc123" {
		t.Errorf("ContentID = %q, want abc123", lookupErr.ContentID)
	}
}
