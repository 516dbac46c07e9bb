package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageUpload(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir, "http://localhost:8080/files/")
	require.NoError(t, err)

	resp, err := s.Upload(context.Background(), &UploadRequest{
		Key:         "reports/bookings/20250301.csv",
		Reader:      strings.NewReader("id,type\n1,tour\n"),
		ContentType: "text/csv",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(15), resp.Size)
	assert.Equal(t, "http://localhost:8080/files/reports/bookings/20250301.csv", resp.URL)

	data, err := os.ReadFile(filepath.Join(dir, "reports", "bookings", "20250301.csv"))
	require.NoError(t, err)
	assert.Equal(t, "id,type\n1,tour\n", string(data))

	url, err := s.GetURL(context.Background(), resp.Key, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, resp.URL, url)
}

func TestLocalStorageRejectsEscapingKeys(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "http://localhost")
	require.NoError(t, err)

	_, err = s.Upload(context.Background(), &UploadRequest{Key: "../outside.csv", Reader: strings.NewReader("x")})
	assert.Error(t, err)
}

func TestNewUnknownProvider(t *testing.T) {
	_, err := New(context.Background(), Config{Provider: "ftp"})
	assert.ErrorContains(t, err, "unknown storage provider")
}
