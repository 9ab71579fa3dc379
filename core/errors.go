package core

import (
	"errors"
	"fmt"
)

var (
	// ErrManifestFetch indicates a manifest could not be retrieved or parsed.
	ErrManifestFetch = errors.New("manifest fetch failed")
	// ErrFileVerification indicates a downloaded file does not match its expected hash.
	ErrFileVerification = errors.New("file verification failed")
	// ErrDownload indicates a transport failure while downloading a file.
	ErrDownload = errors.New("download failed")
	// ErrArchiveAccess indicates an archive could not be opened or read.
	ErrArchiveAccess = errors.New("archive access failed")
	// ErrDescriptorMissing indicates an expected entry is absent from an archive.
	ErrDescriptorMissing = errors.New("descriptor missing")
	// ErrProcessLaunch indicates the game process could not be started.
	ErrProcessLaunch = errors.New("process launch failed")
)

type (
	ManifestFetchError struct {
		URL string
		Err error
	}

	FileVerificationError struct {
		Path     string
		Expected Hash
		Got      string
	}

	DownloadError struct {
		URL string
		Err error
	}

	ArchiveAccessError struct {
		Path string
		Err  error
	}

	DescriptorMissingError struct {
		Archive string
		Entry   string
	}

	ProcessLaunchError struct {
		Command string
		Err     error
	}
)

func (e *ManifestFetchError) Error() string {
	return fmt.Sprintf("failed to fetch manifest %s: %v", e.URL, e.Err)
}

func (e *ManifestFetchError) Unwrap() []error { return []error{ErrManifestFetch, e.Err} }

func (e *FileVerificationError) Error() string {
	return fmt.Sprintf("hash mismatch for %s: expected %s, got %s", e.Path, e.Expected, e.Got)
}

func (e *FileVerificationError) Unwrap() error { return ErrFileVerification }

func (e *DownloadError) Error() string {
	return fmt.Sprintf("failed to download %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() []error { return []error{ErrDownload, e.Err} }

func (e *ArchiveAccessError) Error() string {
	return fmt.Sprintf("failed to read archive %s: %v", e.Path, e.Err)
}

func (e *ArchiveAccessError) Unwrap() []error { return []error{ErrArchiveAccess, e.Err} }

func (e *DescriptorMissingError) Error() string {
	return fmt.Sprintf("archive %s has no %s entry", e.Archive, e.Entry)
}

func (e *DescriptorMissingError) Unwrap() error { return ErrDescriptorMissing }

func (e *ProcessLaunchError) Error() string {
	return fmt.Sprintf("failed to start %s: %v", e.Command, e.Err)
}

func (e *ProcessLaunchError) Unwrap() []error { return []error{ErrProcessLaunch, e.Err} }
