package main

import (
	"bufio"
	"io"
	"os"

	"github.com/gsauthof/xfsx-go"
)

// openInputSource opens path (or stdin for "-"/"") as an xfsx.Source,
// applying --skip by discarding that many leading bytes first. Per
// spec §9's open question, --skip always operates on raw bytes ahead
// of any other positioning flag (--first included).
func openInputSource(path string) (xfsx.Source, func() error, error) {
	f := os.Stdin
	closer := func() error { return nil }
	if path != "" && path != "-" {
		var err error
		f, err = os.Open(path)
		if err != nil {
			return nil, nil, err
		}
		closer = f.Close
	}

	if opts.skip > 0 {
		if _, err := io.CopyN(io.Discard, f, opts.skip); err != nil {
			closer()
			return nil, nil, err
		}
	}

	return xfsx.NewFileSource(f), closer, nil
}

// readInputHeader buffers up to maxBytes of path (or stdin), used by
// auto-detection, which only ever inspects a file's first units.
func readInputHeader(path string, maxBytes int) ([]byte, error) {
	f := os.Stdin
	if path != "" && path != "-" {
		var err error
		f, err = os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
	}
	buf := make([]byte, maxBytes)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return buf[:n], nil
}

// openOutput opens path (or stdout for "-"/"") for writing, wrapped in
// a bufio.Writer — the idiomatic Go equivalent of the scratchpad
// sink's buffered write-some/flush discipline (scratch.go's Sink),
// without needing that interface's PrepareWrite/WriteSome dance since
// every writer here already accepts a plain io.Writer.
func openOutput(path string) (*bufio.Writer, func() error, error) {
	f := os.Stdout
	closer := func() error { return nil }
	if path != "" && path != "-" {
		var err error
		f, err = os.Create(path)
		if err != nil {
			return nil, nil, err
		}
		closer = f.Close
	}
	bw := bufio.NewWriterSize(f, 64*1024)
	return bw, func() error {
		if err := bw.Flush(); err != nil {
			closer()
			return err
		}
		return closer()
	}, nil
}
