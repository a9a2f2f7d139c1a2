package services

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveBackground_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "auto", r.FormValue("size"))

		file, _, err := r.FormFile("image_file")
		require.NoError(t, err)
		data, _ := io.ReadAll(file)
		assert.Equal(t, "raw-jpeg", string(data))

		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("clean-png"))
	}))
	defer srv.Close()

	svc := NewRemoveBgService("test-key", srv.URL)
	out, err := svc.RemoveBackground(context.Background(), []byte("raw-jpeg"))

	require.NoError(t, err)
	assert.Equal(t, "clean-png", string(out))
}

func TestRemoveBackground_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"errors":[{"title":"Insufficient credits","code":"insufficient_credits"}]}`))
	}))
	defer srv.Close()

	_, err := NewRemoveBgService("test-key", srv.URL).RemoveBackground(context.Background(), []byte("x"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Insufficient credits")
}

func TestRemoveBackground_NoKey(t *testing.T) {
	_, err := NewRemoveBgService("", "http://unused").RemoveBackground(context.Background(), []byte("x"))
	assert.ErrorIs(t, err, ErrRemoveBgNotConfigured)
}
