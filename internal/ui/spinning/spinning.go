// Package spinning provides a spinning symbol with a status line, shown while a program is
// busy, and the interrupt (Ctrl+C) handling of the commands.
package spinning

import (
	"context"
	"fmt"
	"io"
	"k8s.io/klog/v2"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

var (
	ThemeAscii = []rune("|/-\\")
	ThemeMoon  = []rune("🌑🌒🌓🌔🌕🌖🌗🌘")

	// Theme used by New, it can be set to anything else.
	Theme = ThemeAscii

	// Period between updates of the spinning symbol.
	Period = 250 * time.Millisecond
)

// SafeInterrupt will capture SigInt (Ctrl+C) and SigTerm and call the provided onInterrupt.
// If the program hasn't exited after gracePeriod, it will call Reset to reset the terminal
// and exit.
func SafeInterrupt(onInterrupt func(), gracePeriod time.Duration) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sigChan
		fmt.Println()
		klog.Errorf("Got interrupted (signal %q), shutting down... (%s)", s, gracePeriod)
		if onInterrupt != nil {
			go onInterrupt()
		}
		time.Sleep(gracePeriod)
		Reset()
		klog.Fatalf("Graceful shutting down %s period expired, exiting.", gracePeriod)
	}()
}

// Reset terminal: make cursor visible, restore default terminal colors.
func Reset() {
	fmt.Print("\033[?25h\033[39;49;0m\n")
}

// Spinning is a running spinner, see New.
type Spinning struct {
	wg     sync.WaitGroup
	cancel func()
}

// New starts a spinner writing to w, on a separate goroutine, until Spinning.Done is called
// or ctx is cancelled. Each update rewrites the line with the next symbol of Theme followed
// by status(), if status is not nil.
func New(ctx context.Context, w io.Writer, status func() string) *Spinning {
	s := &Spinning{}
	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(Period)
		defer ticker.Stop()
		// Hide the cursor while spinning.
		_, _ = fmt.Fprint(w, "\033[?25l")
		defer func() { _, _ = fmt.Fprint(w, "\033[?25h") }()
		for idx := 0; ; idx = (idx + 1) % len(Theme) {
			line := string(Theme[idx])
			if status != nil {
				line += " " + status()
			}
			_, _ = fmt.Fprintf(w, "\r%s\033[0K", line)
			select {
			case <-ctx.Done():
				_, _ = fmt.Fprint(w, "\r\033[0K")
				return
			case <-ticker.C:
			}
		}
	}()
	return s
}

// Done stops the spinner and waits for it to clear its line.
func (s *Spinning) Done() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.wg.Wait()
}
