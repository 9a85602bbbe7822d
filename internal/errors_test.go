package internal

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestStorageError(t *testing.T) {
	originalErr := errors.New("database is locked")
	err := &StorageError{
		Key: SnapshotKey,
		Op:  "save",
		Err: originalErr,
	}

	errorMsg := err.Error()
	if !strings.Contains(errorMsg, "storage error") {
		t.Errorf("StorageError.Error() should contain 'storage error', got: %q", errorMsg)
	}
	if !strings.Contains(errorMsg, SnapshotKey) {
		t.Errorf("StorageError.Error() should contain key, got: %q", errorMsg)
	}

	if !errors.Is(err, originalErr) {
		t.Error("StorageError.Unwrap() should return original error")
	}
}

func TestParseError(t *testing.T) {
	originalErr := errors.New("invalid JSON")
	err := &ParseError{
		Source: "snapshot",
		Key:    SnapshotKey,
		Err:    originalErr,
	}

	errorMsg := err.Error()
	if !strings.Contains(errorMsg, "parse error") {
		t.Errorf("ParseError.Error() should contain 'parse error', got: %q", errorMsg)
	}
	if !strings.Contains(errorMsg, "snapshot") {
		t.Errorf("ParseError.Error() should contain source, got: %q", errorMsg)
	}

	if !errors.Is(err, originalErr) {
		t.Error("ParseError.Unwrap() should return original error")
	}
}

func TestTransportError(t *testing.T) {
	originalErr := errors.New("connection refused")
	tests := []struct {
		name string
		err  *TransportError
		want []string
	}{
		{
			name: "no response",
			err:  &TransportError{Endpoint: DefaultEndpoint, Err: originalErr},
			want: []string{"transport error", DefaultEndpoint, "connection refused"},
		},
		{
			name: "bad status",
			err:  &TransportError{Endpoint: DefaultEndpoint, StatusCode: 502, Err: originalErr},
			want: []string{"[502]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, want := range tt.want {
				if !strings.Contains(msg, want) {
					t.Errorf("Error() = %q, missing %q", msg, want)
				}
			}
			if !errors.Is(tt.err, originalErr) {
				t.Error("TransportError.Unwrap() should return original error")
			}
		})
	}
}

func TestExportError(t *testing.T) {
	originalErr := errors.New("write failed")
	err := &ExportError{
		Format: "jsonl",
		Path:   "/output/file.jsonl",
		Err:    originalErr,
	}

	errorMsg := err.Error()
	if !strings.Contains(errorMsg, "export error") {
		t.Errorf("ExportError.Error() should contain 'export error', got: %q", errorMsg)
	}
	if !strings.Contains(errorMsg, "jsonl") {
		t.Errorf("ExportError.Error() should contain format, got: %q", errorMsg)
	}

	if !errors.Is(err, originalErr) {
		t.Error("ExportError.Unwrap() should return original error")
	}
}

func TestSentinelErrorsWrap(t *testing.T) {
	wrapped := fmt.Errorf("append to chat-1: %w", ErrUnknownSession)
	if !errors.Is(wrapped, ErrUnknownSession) {
		t.Error("wrapped ErrUnknownSession not detected")
	}
	if errors.Is(wrapped, ErrBusy) || errors.Is(wrapped, ErrEmptyInput) {
		t.Error("sentinels should be distinct")
	}
}
