package source

import (
	"io"
	"os"
	"strings"
	"sync"
)

// Log holds the raw lines of one append-only access log in memory and
// refreshes them incrementally as the file grows. The pipeline itself never
// touches the filesystem; this is the caller-side layer that feeds it.
type Log struct {
	mu     sync.Mutex
	path   string
	offset int64
	tail   string // unterminated trailing chunk, kept until its newline arrives
	lines  []string
}

// Open reads the whole log file at path into memory.
func Open(path string) (*Log, error) {
	l := &Log{path: path}
	if _, err := l.refresh(); err != nil {
		return nil, err
	}
	return l, nil
}

// Path returns the underlying file path.
func (l *Log) Path() string {
	return l.path
}

// Lines returns a copy of the current lines, including a trailing
// unterminated line if the file does not end with a newline.
func (l *Log) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]string, 0, len(l.lines)+1)
	out = append(out, l.lines...)
	if l.tail != "" {
		out = append(out, l.tail)
	}
	return out
}

// Len returns the current line count.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := len(l.lines)
	if l.tail != "" {
		n++
	}
	return n
}

// Refresh re-reads the file. Because the log is append-only, only the bytes
// past the last offset are read; a shrunken file means truncation or
// rotation and triggers a full reload. Returns whether the content changed.
func (l *Log) Refresh() (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.refresh()
}

func (l *Log) refresh() (bool, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return false, err
	}

	if info.Size() < l.offset {
		// Truncated or rotated: start over.
		l.offset = 0
		l.tail = ""
		l.lines = nil
	}
	if info.Size() == l.offset {
		return false, nil
	}

	if _, err := f.Seek(l.offset, io.SeekStart); err != nil {
		return false, err
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return false, err
	}
	l.offset += int64(len(data))

	combined := l.tail + string(data)
	parts := strings.Split(combined, "\n")
	l.tail = parts[len(parts)-1]
	for _, p := range parts[:len(parts)-1] {
		l.lines = append(l.lines, strings.TrimRight(p, "\r"))
	}
	return true, nil
}
