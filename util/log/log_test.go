//go:build !release

package log

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"
)

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	tests := []struct {
		name     string
		fn       func()
		expected string
	}{
		{
			name:     "Printf",
			fn:       func() { Printf("frame %d dropped", 42) },
			expected: "frame 42 dropped",
		},
		{
			name:     "Println",
			fn:       func() { Println("stream stopped") },
			expected: "stream stopped",
		},
		{
			name:     "Debugf",
			fn:       func() { Debugf("step %s failed", "blur") },
			expected: "[DEBUG] step blur failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn()
			if !strings.Contains(buf.String(), tt.expected) {
				t.Errorf("Expected log to contain %q, but got %q", tt.expected, buf.String())
			}
		})
	}
}
