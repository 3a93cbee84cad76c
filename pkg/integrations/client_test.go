package integrations

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/pyport/pkg/observability"
)

func TestClientGet(t *testing.T) {
	type response struct {
		Message string `json:"message"`
	}

	var userAgent, custom string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		userAgent = r.Header.Get("User-Agent")
		custom = r.Header.Get("X-Default")
		json.NewEncoder(w).Encode(response{Message: "hello"})
	}))
	defer server.Close()

	client := NewClient(map[string]string{"X-Default": "default"})
	client.http = server.Client()

	var resp response
	if err := client.Get(context.Background(), server.URL, &resp); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if resp.Message != "hello" {
		t.Errorf("Get() message = %q, want %q", resp.Message, "hello")
	}
	if !strings.HasPrefix(userAgent, "pyport/") {
		t.Errorf("User-Agent = %q, want pyport/...", userAgent)
	}
	if custom != "default" {
		t.Errorf("default header = %q, want %q", custom, "default")
	}
}

func TestClientGet404(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	client := NewClient(nil)
	client.http = server.Client()

	var resp map[string]string
	err := client.Get(context.Background(), server.URL, &resp)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestClientGet500(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(nil)
	client.http = server.Client()

	var resp map[string]string
	err := client.Get(context.Background(), server.URL, &resp)
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("Get() error = %v, want ErrNetwork", err)
	}
	if calls != 1 {
		t.Errorf("server called %d times, want 1 (no retries)", calls)
	}
}

func TestClientGetBadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	}))
	defer server.Close()

	client := NewClient(nil)
	client.http = server.Client()

	var resp map[string]string
	if err := client.Get(context.Background(), server.URL, &resp); err == nil {
		t.Error("Get() should fail on malformed JSON")
	}
}

func TestClientGetUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	var resp map[string]string
	err := NewClient(nil).Get(context.Background(), url, &resp)
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("Get() error = %v, want ErrNetwork", err)
	}
}

func TestClientGetCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var resp map[string]string
	err := NewClient(nil).Get(ctx, server.URL, &resp)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Get() error = %v, want context.Canceled", err)
	}
}

type recordingHooks struct {
	observability.NoopHTTPHooks
	mu        sync.Mutex
	requests  []string
	responses []int
}

func (h *recordingHooks) OnRequest(_ context.Context, method, host, path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.requests = append(h.requests, method+" "+path)
}

func (h *recordingHooks) OnResponse(_ context.Context, _, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.responses = append(h.responses, status)
}

func TestClientReportsHTTPHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	client := NewClient(nil)
	client.http = server.Client()

	var resp map[string]string
	if err := client.Get(context.Background(), server.URL+"/pypi/six/json", &resp); err != nil {
		t.Fatalf("Get() error: %v", err)
	}

	if len(hooks.requests) != 1 || hooks.requests[0] != "GET /pypi/six/json" {
		t.Errorf("requests = %v", hooks.requests)
	}
	if len(hooks.responses) != 1 || hooks.responses[0] != http.StatusOK {
		t.Errorf("responses = %v", hooks.responses)
	}
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		wantType error
	}{
		{"200 OK", 200, nil},
		{"404 Not Found", 404, ErrNotFound},
		{"500 Internal Server Error", 500, ErrNetwork},
		{"503 Service Unavailable", 503, ErrNetwork},
		{"400 Bad Request", 400, ErrNetwork},
		{"403 Forbidden", 403, ErrNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkStatus(tt.code)
			if tt.wantType == nil {
				if err != nil {
					t.Errorf("checkStatus() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantType) {
				t.Errorf("checkStatus() error = %v, want %v", err, tt.wantType)
			}
		})
	}
}

func TestNormalizePkgName(t *testing.T) {
	tests := map[string]string{
		"Django":             "django",
		"typing_extensions":  "typing-extensions",
		"zope.interface":     "zope-interface",
		"ruamel.yaml.clib":   "ruamel-yaml-clib",
		"foo__bar":           "foo-bar",
		"foo-_.bar":          "foo-bar",
		"  PyYAML ":          "pyyaml",
		"already-normalised": "already-normalised",
		"":                   "",
	}
	for in, want := range tests {
		if got := NormalizePkgName(in); got != want {
			t.Errorf("NormalizePkgName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNewHTTPClientTimeout(t *testing.T) {
	if got := NewHTTPClient().Timeout; got != requestTimeout {
		t.Errorf("Timeout = %v, want %v", got, requestTimeout)
	}
}
