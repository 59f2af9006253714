// Package input walks the input sources line by line: plain files,
// gzip-compressed files (.gz), and stdin ("-"), in argument order.
package input

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/term"

	errs "github.com/openrtl/rxstats/pkg/errors"
)

// Lines above this size are broken JSON anyway; the limit just keeps a
// corrupt input from ballooning the scanner buffer.
const maxLineBytes = 1 << 20

// LineFunc receives each non-empty input line with its origin. Returning
// an error aborts the walk.
type LineFunc func(source string, lineNo int, line []byte) error

// EachLine streams every line of every source to fn. With progress true
// and stderr attached to a terminal, a byte progress bar tracks the raw
// (compressed) input.
func EachLine(paths []string, progress bool, fn LineFunc) error {
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	bar := startBar(paths, progress)
	if bar != nil {
		defer bar.Finish()
	}

	for _, path := range paths {
		if err := eachFileLine(path, bar, fn); err != nil {
			return err
		}
	}
	return nil
}

func eachFileLine(path string, bar *pb.ProgressBar, fn LineFunc) error {
	var raw io.Reader
	name := path
	if path == "-" {
		raw = os.Stdin
		name = "<stdin>"
	} else {
		f, err := os.Open(path)
		if err != nil {
			return errs.ErrInputFailed(path, err)
		}
		defer f.Close()
		raw = f
	}

	if bar != nil {
		raw = bar.NewProxyReader(raw)
	}

	r := raw
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(raw)
		if err != nil {
			return errs.ErrInputFailed(path, err)
		}
		defer gz.Close()
		r = gz
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if err := fn(name, lineNo, line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return errs.ErrInputFailed(name, err)
	}
	return nil
}

// startBar sizes a byte progress bar over all regular-file sources.
// Returns nil when progress is off, stderr is not a terminal, or any
// source has no knowable size.
func startBar(paths []string, progress bool) *pb.ProgressBar {
	if !progress || !term.IsTerminal(int(os.Stderr.Fd())) {
		return nil
	}
	var total int64
	for _, path := range paths {
		if path == "-" {
			return nil
		}
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			return nil
		}
		total += info.Size()
	}
	bar := pb.Full.Start64(total)
	bar.Set(pb.Bytes, true)
	bar.SetWriter(os.Stderr)
	return bar
}
