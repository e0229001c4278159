package http

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gzipData(t *testing.T, data string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gzw := gzip.NewWriter(&buf)
	_, err := gzw.Write([]byte(data))
	require.NoError(t, err)
	require.NoError(t, gzw.Close())
	return buf.Bytes()
}

func gunzip(t *testing.T, data []byte) string {
	t.Helper()
	gr, err := gzip.NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer gr.Close()
	out, err := io.ReadAll(gr)
	require.NoError(t, err)
	return string(out)
}

func TestGzipRequestMiddleware(t *testing.T) {
	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Content-Encoding"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		w.Write(body)
	})

	tests := []struct {
		name            string
		body            []byte
		contentEncoding string
		wantStatus      int
		wantBody        string
	}{
		{
			name:       "plain body",
			body:       []byte(`{"entity_type":"SSN"}`),
			wantStatus: http.StatusOK,
			wantBody:   `{"entity_type":"SSN"}`,
		},
		{
			name:            "gzip body",
			body:            gzipData(t, `{"entity_type":"EMAIL"}`),
			contentEncoding: "gzip",
			wantStatus:      http.StatusOK,
			wantBody:        `{"entity_type":"EMAIL"}`,
		},
		{
			name:            "header is case insensitive",
			body:            gzipData(t, "x"),
			contentEncoding: "GZIP",
			wantStatus:      http.StatusOK,
			wantBody:        "x",
		},
		{
			name:            "invalid gzip",
			body:            []byte("not gzip"),
			contentEncoding: "gzip",
			wantStatus:      http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/flags", bytes.NewReader(tt.body))
			if tt.contentEncoding != "" {
				req.Header.Set("Content-Encoding", tt.contentEncoding)
			}
			rr := httptest.NewRecorder()

			GzipRequestMiddleware(echo).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rr.Body.String())
			}
		})
	}
}

func TestGzipResponseMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		acceptEncoding string
		contentType    string
		status         int
		body           string
		wantGzip       bool
	}{
		{name: "json gzip", acceptEncoding: "gzip, deflate", contentType: "application/json", status: http.StatusOK, body: `{"value":1}`, wantGzip: true},
		{name: "html gzip", acceptEncoding: "gzip", contentType: "text/html; charset=utf-8", status: http.StatusOK, body: "<html></html>", wantGzip: true},
		{name: "client without gzip", contentType: "application/json", status: http.StatusOK, body: `{"value":1}`},
		{name: "plain text not compressed", acceptEncoding: "gzip", contentType: "text/plain", status: http.StatusInternalServerError, body: "Internal server error"},
		{name: "status preserved", acceptEncoding: "gzip", contentType: "application/json", status: http.StatusCreated, body: `{}`, wantGzip: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/snapshot", nil)
			if tt.acceptEncoding != "" {
				req.Header.Set("Accept-Encoding", tt.acceptEncoding)
			}
			rr := httptest.NewRecorder()

			GzipResponseMiddleware(handler).ServeHTTP(rr, req)

			assert.Equal(t, tt.status, rr.Code)
			if tt.wantGzip {
				assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
				assert.Equal(t, tt.body, gunzip(t, rr.Body.Bytes()))
				return
			}
			assert.Empty(t, rr.Header().Get("Content-Encoding"))
			assert.Equal(t, tt.body, rr.Body.String())
		})
	}
}

func TestGzipResponseMiddleware_ImplicitHeader(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "<!DOCTYPE html><html><body>"+strings.Repeat("x", 64)+"</body></html>")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()

	GzipResponseMiddleware(handler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
	assert.Contains(t, gunzip(t, rr.Body.Bytes()), "<!DOCTYPE html>")
}
