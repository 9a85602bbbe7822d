package internal

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned for input that is empty after trimming
	ErrEmptyInput = errors.New("input is empty")

	// ErrUnknownSession is returned when the target session does not exist
	ErrUnknownSession = errors.New("unknown session")

	// ErrBusy is returned when a submission is already awaiting its response
	ErrBusy = errors.New("a request is already in flight")
)

// StorageError represents errors reading or writing the persisted snapshot
type StorageError struct {
	Key string
	Op  string // "open", "load", "save"
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ParseError represents errors parsing data
type ParseError struct {
	Source string // "snapshot", "response", "config"
	Key    string // storage key, endpoint or file path
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error [%s] %s: %v", e.Source, e.Key, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// TransportError represents a failed exchange with the answering service
type TransportError struct {
	Endpoint   string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport error [%d] %s: %v", e.StatusCode, e.Endpoint, e.Err)
	}
	return fmt.Sprintf("transport error %s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ExportError represents errors during export
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
