// Package formtest builds multipart requests and decodes JSON responses in handler tests.
package formtest

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// PNG is the smallest header mimetype recognises as image/png.
var PNG = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

type File struct {
	Field string
	Name  string
	Data  []byte
}

// Request encodes fields and files as multipart/form-data.
func Request(t testing.TB, method, target string, fields map[string]string, files ...File) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.Field, f.Name)
		require.NoError(t, err)
		_, err = part.Write(f.Data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func Serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func Get(h http.Handler, target string) *httptest.ResponseRecorder {
	return Serve(h, httptest.NewRequest(http.MethodGet, target, nil))
}

func Delete(h http.Handler, target string) *httptest.ResponseRecorder {
	return Serve(h, httptest.NewRequest(http.MethodDelete, target, nil))
}

func Decode[T any](t testing.TB, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

// ErrorMessage reads the "error" field of an error body.
func ErrorMessage(t testing.TB, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return Decode[map[string]any](t, rec)["error"].(string)
}
