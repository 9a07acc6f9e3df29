// Package recordio implements the external record-source/record-sink
// boundary named in the system overview: newline-delimited JSON files, one
// record per line. This boundary is deliberately the thinnest layer in the
// module — the spec treats the parser and serializer as out-of-scope
// collaborators with only their contract specified.
package recordio

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"os"

	relflowerrors "github.com/marachen/relflow/pkg/errors"
	"github.com/marachen/relflow/pkg/record"
)

// FileReader lazily opens a file on the first call to Next and reads one
// JSON-encoded record per line. It implements the pipeline's Stream
// interface (see internal/pipeline).
type FileReader struct {
	path    string
	file    *os.File
	scanner *bufio.Scanner
	line    int
	closed  bool
}

// NewFileReader returns a reader that will open path on first use.
func NewFileReader(path string) *FileReader {
	return &FileReader{path: path}
}

// Next returns the next record, or io.EOF when the file is exhausted.
func (r *FileReader) Next() (record.Record, error) {
	if r.closed {
		return nil, io.EOF
	}

	if r.file == nil {
		f, err := os.Open(r.path)
		if err != nil {
			return nil, err
		}
		r.file = f
		r.scanner = bufio.NewScanner(f)
		r.scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	}

	for r.scanner.Scan() {
		r.line++
		text := r.scanner.Bytes()
		if len(text) == 0 {
			continue
		}

		dec := json.NewDecoder(bytes.NewReader(text))
		dec.UseNumber()
		var raw map[string]interface{}
		if err := dec.Decode(&raw); err != nil {
			_ = r.Close()
			return nil, relflowerrors.NewSourceParseError(r.path, r.line, err)
		}

		rec, err := record.New(raw)
		if err != nil {
			_ = r.Close()
			return nil, relflowerrors.NewSourceParseError(r.path, r.line, err)
		}
		return rec, nil
	}

	if err := r.scanner.Err(); err != nil {
		_ = r.Close()
		return nil, err
	}

	if err := r.Close(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

// Close releases the underlying file handle. Safe to call multiple times.
func (r *FileReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if r.file == nil {
		return nil
	}
	return r.file.Close()
}

// WriteFile serializes records to path, one JSON object per line, each
// terminated by '\n'.
func WriteFile(path string, records []record.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, rec := range records {
		raw := make(map[string]interface{}, len(rec))
		for _, field := range rec.Fields() {
			v, _ := rec.Get(field)
			raw[field] = v.Raw()
		}
		data, err := json.Marshal(raw)
		if err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return w.Flush()
}
