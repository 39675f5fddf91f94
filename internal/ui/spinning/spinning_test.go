package spinning

import (
	"bytes"
	"context"
	"github.com/stretchr/testify/assert"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a bytes.Buffer safe for concurrent use.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinning(t *testing.T) {
	Period = time.Millisecond
	var buf syncBuffer
	s := New(context.Background(), &buf, func() string { return "3 of 10 games" })
	time.Sleep(20 * time.Millisecond)
	s.Done()
	s.Done() // Calling it twice is fine.
	out := buf.String()
	assert.Contains(t, out, "| 3 of 10 games")
	assert.True(t, strings.HasSuffix(out, "\033[?25h"), "cursor not restored: %q", out)
}
