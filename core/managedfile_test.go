package core

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPayload = "test data"
const testPayloadSHA1 = "f48dd853820860816c75d54d0f584dc863327a7c"

type countingServer struct {
	*httptest.Server
	hits atomic.Int32
}

func newCountingServer(t *testing.T, handler http.HandlerFunc) *countingServer {
	t.Helper()
	cs := &countingServer{}
	cs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cs.hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(cs.Close)
	return cs
}

func payloadHandler(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte(testPayload))
}

func testDownloader() *Downloader {
	d := NewDownloader(NewHTTPFetcher(5 * time.Second))
	d.Interval = time.Millisecond
	return d
}

func TestVerifyAndUpdateIsIdempotent(t *testing.T) {
	srv := newCountingServer(t, payloadHandler)
	f := NewManagedFile(srv.URL+"/file", "nested/dir/file.txt", NewHash(HashSHA1, testPayloadSHA1))
	f.Prefix = t.TempDir()

	changed, err := f.VerifyAndUpdate(context.Background(), testDownloader())
	require.NoError(t, err)
	assert.True(t, changed)
	assert.EqualValues(t, 1, srv.hits.Load())

	changed, err = f.VerifyAndUpdate(context.Background(), testDownloader())
	require.NoError(t, err)
	assert.False(t, changed)
	assert.EqualValues(t, 1, srv.hits.Load())

	data, err := os.ReadFile(f.LocalPath())
	require.NoError(t, err)
	assert.Equal(t, testPayload, string(data))
}

func TestVerifyAndUpdateDetectsCorruption(t *testing.T) {
	srv := newCountingServer(t, payloadHandler)
	f := NewManagedFile(srv.URL+"/file", "file.txt", NewHash(HashSHA1, testPayloadSHA1))
	f.Prefix = t.TempDir()

	_, err := f.VerifyAndUpdate(context.Background(), testDownloader())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(f.LocalPath(), []byte("tampered"), 0o644))
	ok, err := f.Verify()
	require.NoError(t, err)
	assert.False(t, ok)

	changed, err := f.VerifyAndUpdate(context.Background(), testDownloader())
	require.NoError(t, err)
	assert.True(t, changed)
	assert.EqualValues(t, 2, srv.hits.Load())

	got, err := HashFile(f.LocalPath(), HashSHA1)
	require.NoError(t, err)
	assert.Equal(t, testPayloadSHA1, got)
}

func TestVerifyWithoutHash(t *testing.T) {
	f := NewManagedFile("", "config.cfg", nil)
	f.Prefix = t.TempDir()

	ok, err := f.Verify()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, os.MkdirAll(f.LocalPath(), os.ModePerm))
	ok, err = f.Verify()
	require.NoError(t, err)
	assert.False(t, ok, "a directory is not a valid file")

	require.NoError(t, os.Remove(f.LocalPath()))
	require.NoError(t, os.WriteFile(f.LocalPath(), []byte("anything"), 0o644))
	ok, err = f.Verify()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPrefixResolvedAtUse(t *testing.T) {
	f := NewManagedFile("", "mods/a.jar", nil)
	f.Prefix = "first"
	assert.Equal(t, filepath.Join("first", "mods", "a.jar"), f.LocalPath())
	f.Prefix = "second"
	assert.Equal(t, filepath.Join("second", "mods", "a.jar"), f.LocalPath())
}

func TestDownloadRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := newCountingServer(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		payloadHandler(w, r)
	})
	f := NewManagedFile(srv.URL+"/file", "file.txt", NewHash(HashSHA1, testPayloadSHA1))
	f.Prefix = t.TempDir()

	changed, err := f.VerifyAndUpdate(context.Background(), testDownloader())
	require.NoError(t, err)
	assert.True(t, changed)
	assert.EqualValues(t, 2, srv.hits.Load())
}

func TestDownloadDoesNotRetryNotFound(t *testing.T) {
	srv := newCountingServer(t, http.NotFound)
	f := NewManagedFile(srv.URL+"/file", "file.txt", nil)
	f.Prefix = t.TempDir()

	_, err := f.VerifyAndUpdate(context.Background(), testDownloader())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDownload))

	var dlErr *DownloadError
	require.True(t, errors.As(err, &dlErr))
	assert.Equal(t, srv.URL+"/file", dlErr.URL)
	assert.EqualValues(t, 1, srv.hits.Load())
}

func TestDownloadHashMismatch(t *testing.T) {
	srv := newCountingServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not the expected content"))
	})
	f := NewManagedFile(srv.URL+"/file", "file.txt", NewHash(HashSHA1, testPayloadSHA1))
	f.Prefix = t.TempDir()

	_, err := f.VerifyAndUpdate(context.Background(), testDownloader())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFileVerification))
	assert.EqualValues(t, 1, srv.hits.Load())

	_, statErr := os.Stat(f.LocalPath())
	assert.True(t, errors.Is(statErr, os.ErrNotExist), "no truncated or corrupt file is left behind")

	entries, err := os.ReadDir(f.Prefix)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
