// Package signals handles Ctrl+C for the interactive binaries.
package signals

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"k8s.io/klog/v2"
)

// CancelOnInterrupt returns a context that is cancelled on SIGINT (Ctrl+C) or SIGTERM.
//
// The interactive loop may be blocked reading the terminal, so if the program is still
// running gracePeriod after the signal, the terminal is reset and the program exits.
func CancelOnInterrupt(ctx context.Context, gracePeriod time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		defer signal.Stop(sigChan)
		select {
		case <-ctx.Done():
			return
		case s := <-sigChan:
			fmt.Println()
			klog.Errorf("Got interrupted (signal %q), shutting down... (%s)", s, gracePeriod)
			cancel()
		}
		time.Sleep(gracePeriod)
		Reset(os.Stdout)
		klog.Fatalf("Graceful shutting down %s period expired, exiting.", gracePeriod)
	}()
	return ctx, cancel
}

// Reset the terminal: make the cursor visible and restore the default colors.
func Reset(w io.Writer) {
	_, _ = fmt.Fprint(w, "\033[?25h\033[39;49;0m\n")
}
