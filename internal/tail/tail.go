// Package tail follows a growing capture log and streams new lines as
// classified events.
//
// It implements "tail -f" like behavior on top of fsnotify, including
// detection of the client rotating to a new log file.
package tail

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/xivtools/xivsplit/internal/netlog"
)

// Options configures the tailer behavior.
type Options struct {
	FilePath     string                  // Path to the capture log
	Lines        int                     // Number of trailing lines to replay on start
	Follow       bool                    // Whether to keep following for new content
	FollowRotate bool                    // Whether to follow through log rotations
	OutputFunc   func(netlog.Line) error // Called for every line in file order
}

// Tailer follows a single capture log.
type Tailer struct {
	opts    Options
	file    *os.File
	offset  int64
	watcher *fsnotify.Watcher
}

// New creates a new Tailer with the given options.
func New(opts Options) *Tailer {
	return &Tailer{opts: opts}
}

// Run starts tailing. It blocks until the context is cancelled or an error
// occurs.
func (t *Tailer) Run(ctx context.Context) error {
	if err := t.openFile(); err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer t.close()

	if t.opts.Lines > 0 {
		if err := t.replayTrailingLines(); err != nil {
			return fmt.Errorf("failed to replay trailing lines: %w", err)
		}
	}

	if !t.opts.Follow {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to setup watcher: %w", err)
	}
	t.watcher = watcher
	if err := watcher.Add(t.opts.FilePath); err != nil {
		return fmt.Errorf("failed to watch file: %w", err)
	}

	return t.watch(ctx)
}

func (t *Tailer) openFile() error {
	f, err := os.Open(t.opts.FilePath)
	if err != nil {
		return err
	}
	t.file = f

	stat, err := f.Stat()
	if err != nil {
		return err
	}
	t.offset = stat.Size()
	return nil
}

// replayTrailingLines emits the last N lines already in the file.
func (t *Tailer) replayTrailingLines() error {
	stat, err := t.file.Stat()
	if err != nil {
		return err
	}
	fileSize := stat.Size()
	if fileSize == 0 {
		return nil
	}

	// Seek back by a generous per-line estimate; capture lines are long.
	startPos := fileSize - int64(t.opts.Lines*512*2)
	if startPos < 0 {
		startPos = 0
	}
	if _, err := t.file.Seek(startPos, io.SeekStart); err != nil {
		return err
	}

	scanner := newLineScanner(t.file)
	if startPos > 0 && scanner.Scan() {
		// Discard the first, likely partial, line.
	}

	var lines []netlog.Line
	for scanner.Scan() {
		raw := scanner.Text()
		if strings.TrimSpace(raw) == "" {
			continue
		}
		lines = append(lines, netlog.Parse(raw))
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if len(lines) > t.opts.Lines {
		lines = lines[len(lines)-t.opts.Lines:]
	}
	for _, line := range lines {
		if err := t.opts.OutputFunc(line); err != nil {
			return err
		}
	}

	t.offset, err = t.file.Seek(0, io.SeekEnd)
	return err
}

func (t *Tailer) watch(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-t.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher closed unexpectedly")
			}
			if err := t.handleEvent(ctx, event); err != nil {
				return err
			}

		case err, ok := <-t.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

func (t *Tailer) handleEvent(ctx context.Context, event fsnotify.Event) error {
	switch {
	case event.Op&fsnotify.Write == fsnotify.Write:
		return t.readNewContent()

	case event.Op&fsnotify.Remove == fsnotify.Remove || event.Op&fsnotify.Rename == fsnotify.Rename:
		return t.handleRotation(ctx)
	}
	return nil
}

// readNewContent emits lines appended since the last read.
func (t *Tailer) readNewContent() error {
	if _, err := t.file.Seek(t.offset, io.SeekStart); err != nil {
		return err
	}

	scanner := newLineScanner(t.file)
	for scanner.Scan() {
		raw := scanner.Text()
		if strings.TrimSpace(raw) == "" {
			continue
		}
		if err := t.opts.OutputFunc(netlog.Parse(raw)); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	var err error
	t.offset, err = t.file.Seek(0, io.SeekCurrent)
	return err
}

// handleRotation waits for the client to start a fresh log at the same path.
func (t *Tailer) handleRotation(ctx context.Context) error {
	if !t.opts.FollowRotate {
		return fmt.Errorf("log file rotated")
	}

	if t.file != nil {
		t.file.Close()
		t.file = nil
	}

	timeout := time.After(10 * time.Second)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timeout:
			return fmt.Errorf("timeout waiting for rotated file to reappear")
		case <-ticker.C:
			f, err := os.Open(t.opts.FilePath)
			if err != nil {
				continue
			}
			t.file = f
			t.offset = 0
			if err := t.watcher.Add(t.opts.FilePath); err != nil {
				return fmt.Errorf("failed to watch rotated file: %w", err)
			}
			return nil
		}
	}
}

func newLineScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	const maxScanTokenSize = 1024 * 1024
	buf := make([]byte, maxScanTokenSize)
	scanner.Buffer(buf, maxScanTokenSize)
	return scanner
}

func (t *Tailer) close() {
	if t.file != nil {
		t.file.Close()
	}
	if t.watcher != nil {
		t.watcher.Close()
	}
}
