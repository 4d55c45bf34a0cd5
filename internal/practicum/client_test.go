package practicum

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type mockTransport struct {
	body       string
	statusCode int
	err        error

	req *http.Request
}

func (m *mockTransport) Do(req *http.Request) (*http.Response, error) {
	m.req = req
	if m.err != nil {
		return nil, m.err
	}
	return &http.Response{
		StatusCode: m.statusCode,
		Body:       io.NopCloser(bytes.NewBufferString(m.body)),
	}, nil
}

func loadFixture(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) //nolint:gosec // test-only fixture loading
	if err != nil {
		t.Fatalf("read fixture %s: %v", path, err)
	}
	return string(data)
}

func TestGetAPIAnswer(t *testing.T) {
	fixture := loadFixture(t, "../../testdata/homework_statuses.json")

	tests := []struct {
		name          string
		transport     *mockTransport
		wantDate      json.Number
		wantItems     int
		wantTransport bool
		wantStatus    int
		wantMalformed bool
	}{
		{
			name:      "successful fetch",
			transport: &mockTransport{body: fixture, statusCode: 200},
			wantDate:  "1581604970",
			wantItems: 2,
		},
		{
			name:      "empty homework list",
			transport: &mockTransport{body: `{"homeworks":[],"current_date":200}`, statusCode: 200},
			wantDate:  "200",
			wantItems: 0,
		},
		{
			name:       "server error",
			transport:  &mockTransport{body: `{"code":"internal"}`, statusCode: 500},
			wantStatus: 500,
		},
		{
			name:       "unauthorized",
			transport:  &mockTransport{body: `{"code":"not_authenticated"}`, statusCode: 401},
			wantStatus: 401,
		},
		{
			name:          "network error",
			transport:     &mockTransport{err: io.ErrUnexpectedEOF},
			wantTransport: true,
		},
		{
			name:          "invalid json",
			transport:     &mockTransport{body: "<html>oops</html>", statusCode: 200},
			wantMalformed: true,
		},
		{
			name:          "trailing garbage",
			transport:     &mockTransport{body: `{"homeworks":[]} {}`, statusCode: 200},
			wantMalformed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.transport, "", "secret")
			got, err := c.GetAPIAnswer(context.Background(), 100)

			switch {
			case tt.wantTransport:
				var te *TransportError
				if !errors.As(err, &te) {
					t.Fatalf("expected TransportError, got %v", err)
				}
				if !errors.Is(err, io.ErrUnexpectedEOF) {
					t.Errorf("expected wrapped cause, got %v", err)
				}
				return
			case tt.wantStatus != 0:
				var se *UnexpectedStatusError
				if !errors.As(err, &se) {
					t.Fatalf("expected UnexpectedStatusError, got %v", err)
				}
				if diff := cmp.Diff(tt.wantStatus, se.StatusCode); diff != "" {
					t.Errorf("status mismatch (-want +got):\n%s", diff)
				}
				return
			case tt.wantMalformed:
				var me *MalformedBodyError
				if !errors.As(err, &me) {
					t.Fatalf("expected MalformedBodyError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			obj, ok := got.(map[string]any)
			if !ok {
				t.Fatalf("expected object, got %T", got)
			}
			if diff := cmp.Diff(tt.wantDate, obj["current_date"]); diff != "" {
				t.Errorf("current_date mismatch (-want +got):\n%s", diff)
			}
			list, _ := obj["homeworks"].([]any)
			if diff := cmp.Diff(tt.wantItems, len(list)); diff != "" {
				t.Errorf("item count mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGetAPIAnswerRequest(t *testing.T) {
	transport := &mockTransport{body: `{"homeworks":[]}`, statusCode: 200}
	c := New(transport, "https://api.example.com/homework_statuses/", "tok-123")

	if _, err := c.GetAPIAnswer(context.Background(), 1581604970); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := transport.req
	if diff := cmp.Diff(http.MethodGet, req.Method); diff != "" {
		t.Errorf("method mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("https://api.example.com/homework_statuses/?from_date=1581604970", req.URL.String()); diff != "" {
		t.Errorf("url mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("OAuth tok-123", req.Header.Get("Authorization")); diff != "" {
		t.Errorf("authorization mismatch (-want +got):\n%s", diff)
	}
}

func TestGetAPIAnswerZeroCursorUsesNow(t *testing.T) {
	transport := &mockTransport{body: `{"homeworks":[]}`, statusCode: 200}
	c := New(transport, "", "tok")
	c.now = func() time.Time { return time.Unix(1700000000, 0) }

	if _, err := c.GetAPIAnswer(context.Background(), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff("1700000000", transport.req.URL.Query().Get("from_date")); diff != "" {
		t.Errorf("from_date mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("practicum.yandex.ru", transport.req.URL.Host); diff != "" {
		t.Errorf("host mismatch (-want +got):\n%s", diff)
	}
}
