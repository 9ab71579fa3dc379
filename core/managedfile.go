package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/charmbracelet/log"
)

// ManagedFile pairs a remote URL with a local path and an optional hash.
// Prefix is applied when the file is used so a pack can be relocated without
// re-resolving its manifest.
type ManagedFile struct {
	URL string
	// Path is stored in forward slash format relative to Prefix
	Path   string
	Prefix string
	Hash   *Hash
}

func NewManagedFile(url, path string, hash *Hash) *ManagedFile {
	return &ManagedFile{URL: url, Path: path, Hash: hash}
}

// LocalPath resolves the file on disk using the current Prefix.
func (f *ManagedFile) LocalPath() string {
	return filepath.Join(f.Prefix, filepath.FromSlash(f.Path))
}

// Verify reports whether the local copy is valid. Without a hash any regular
// file is valid.
func (f *ManagedFile) Verify() (bool, error) {
	path := f.LocalPath()
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !info.Mode().IsRegular() {
		return false, nil
	}
	if f.Hash == nil {
		return true, nil
	}
	got, err := HashFile(path, f.Hash.Algorithm)
	if err != nil {
		return false, err
	}
	return f.Hash.Matches(got), nil
}

// VerifyAndUpdate downloads the file when the local copy is missing or
// invalid. changed is true only when a download replaced the local file.
func (f *ManagedFile) VerifyAndUpdate(ctx context.Context, d *Downloader) (bool, error) {
	ok, err := f.Verify()
	if err != nil {
		return false, fmt.Errorf("failed to verify %s: %w", f.LocalPath(), err)
	}
	if ok {
		return false, nil
	}
	if f.URL == "" {
		return false, &DownloadError{URL: f.Path, Err: errors.New("no download url")}
	}
	if err := d.Download(ctx, f.URL, f.LocalPath(), f.Hash); err != nil {
		return false, err
	}
	return true, nil
}

// Downloader fetches files to disk, retrying transport failures.
type Downloader struct {
	Fetcher Fetcher
	// Retries is the number of additional attempts after a transport failure
	Retries  uint64
	Interval time.Duration
	Logger   *log.Logger
}

const DefaultRetries = 2

func NewDownloader(fetcher Fetcher) *Downloader {
	return &Downloader{
		Fetcher:  fetcher,
		Retries:  DefaultRetries,
		Interval: 500 * time.Millisecond,
		Logger:   log.Default(),
	}
}

// Download writes url to dest. The content goes to a temporary file next to
// dest and is renamed over it once complete and verified.
func (d *Downloader) Download(ctx context.Context, url, dest string, expected *Hash) error {
	attempt := 0
	op := func() error {
		attempt++
		err := d.fetchTo(ctx, url, dest, expected)
		if err == nil {
			return nil
		}
		var verr *FileVerificationError
		var serr *StatusError
		if errors.As(err, &verr) || (errors.As(err, &serr) && serr.Permanent()) || ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		d.logger().Debug("download attempt failed", "url", url, "attempt", attempt, "err", err)
		return err
	}

	b := backoff.NewExponentialBackOff()
	if d.Interval > 0 {
		b.InitialInterval = d.Interval
	}
	err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(b, d.Retries), ctx))
	if err == nil {
		return nil
	}
	var verr *FileVerificationError
	if errors.As(err, &verr) {
		return verr
	}
	return &DownloadError{URL: url, Err: err}
}

func (d *Downloader) fetchTo(ctx context.Context, url, dest string, expected *Hash) error {
	var hasher HashStringer
	if expected != nil {
		var err error
		hasher, err = GetHashImpl(expected.Algorithm)
		if err != nil {
			return backoff.Permanent(err)
		}
	}

	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return backoff.Permanent(err)
	}

	body, err := d.Fetcher.Fetch(ctx, url)
	if err != nil {
		return err
	}
	defer body.Close()

	tmp, err := os.CreateTemp(dir, filepath.Base(dest)+".*.part")
	if err != nil {
		return backoff.Permanent(err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	var w io.Writer = tmp
	if hasher != nil {
		w = io.MultiWriter(tmp, hasher)
	}
	if _, err := io.Copy(w, body); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if hasher != nil {
		if got := hasher.String(); !expected.Matches(got) {
			return &FileVerificationError{Path: dest, Expected: *expected, Got: got}
		}
	}

	if err := os.Rename(tmpName, dest); err != nil {
		return backoff.Permanent(err)
	}
	committed = true
	return nil
}

func (d *Downloader) logger() *log.Logger {
	if d.Logger == nil {
		return log.Default()
	}
	return d.Logger
}
