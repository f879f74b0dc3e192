package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(UnknownType, "unknown type %q", "XX")
	if err.Code != UnknownType {
		t.Errorf("Code = %s, want %s", err.Code, UnknownType)
	}
	if got := err.Error(); got != `UNKNOWN_TYPE: unknown type "XX"` {
		t.Errorf("Error() = %q", got)
	}
	if err.Unwrap() != nil {
		t.Error("New should carry no cause")
	}
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("permission denied")
	err := Wrap(SnapshotRead, cause, "reading %s", "old.dat")

	if !errors.Is(err, cause) {
		t.Error("wrapped error should match its cause")
	}
	msg := err.Error()
	if !strings.Contains(msg, "SNAPSHOT_READ") || !strings.Contains(msg, "permission denied") {
		t.Errorf("Error() = %q", msg)
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"direct", New(ConfigInvalid, "bad"), ConfigInvalid},
		{"wrapped once more", fmt.Errorf("outer: %w", New(HistoryWrite, "locked")), HistoryWrite},
		{"plain error", fmt.Errorf("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf = %q, want %q", got, tt.want)
			}
		})
	}
}
