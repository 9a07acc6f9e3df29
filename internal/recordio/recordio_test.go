package recordio

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	relflowerrors "github.com/marachen/relflow/pkg/errors"
	"github.com/marachen/relflow/pkg/record"
)

func TestFileReaderPreservesIntFloatDistinction(t *testing.T) {
	t.Parallel()

	path := writeTempFile(t, `{"count":3,"ratio":1.5,"word":"a"}`+"\n")

	r := NewFileReader(path)
	defer r.Close()

	rec, err := r.Next()
	require.NoError(t, err)

	count, ok := rec.Get("count")
	require.True(t, ok)
	i, isInt := count.Int()
	require.True(t, isInt)
	require.Equal(t, int64(3), i)

	ratio, ok := rec.Get("ratio")
	require.True(t, ok)
	f, isFloat := ratio.Float()
	require.True(t, isFloat)
	require.Equal(t, 1.5, f)

	_, err = r.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestFileReaderSkipsBlankLines(t *testing.T) {
	t.Parallel()

	path := writeTempFile(t, "{\"a\":1}\n\n{\"a\":2}\n")

	r := NewFileReader(path)
	defer r.Close()

	first, err := r.Next()
	require.NoError(t, err)
	v, _ := first.Get("a")
	i, _ := v.Int()
	require.Equal(t, int64(1), i)

	second, err := r.Next()
	require.NoError(t, err)
	v, _ = second.Get("a")
	i, _ = v.Int()
	require.Equal(t, int64(2), i)

	_, err = r.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestFileReaderReturnsSourceParseErrorOnMalformedLine(t *testing.T) {
	t.Parallel()

	path := writeTempFile(t, "{not valid json}\n")

	r := NewFileReader(path)
	defer r.Close()

	_, err := r.Next()
	require.Error(t, err)
	var parseErr *relflowerrors.SourceParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, 1, parseErr.Line)
}

func TestFileReaderMissingFileReturnsOSError(t *testing.T) {
	t.Parallel()

	r := NewFileReader(filepath.Join(t.TempDir(), "does-not-exist.jsonl"))
	defer r.Close()

	_, err := r.Next()
	require.Error(t, err)
	require.True(t, os.IsNotExist(err))
}

func TestFileReaderCloseIsIdempotent(t *testing.T) {
	t.Parallel()

	path := writeTempFile(t, "{\"a\":1}\n")
	r := NewFileReader(path)

	_, err := r.Next()
	require.NoError(t, err)

	require.NoError(t, r.Close())
	require.NoError(t, r.Close())

	_, err = r.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestWriteFileThenFileReaderRoundTrips(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.jsonl")
	recA, err := record.New(map[string]interface{}{"word": "hello", "count": int64(2)})
	require.NoError(t, err)
	recB, err := record.New(map[string]interface{}{"word": "world", "count": int64(5)})
	require.NoError(t, err)

	require.NoError(t, WriteFile(path, []record.Record{recA, recB}))

	r := NewFileReader(path)
	defer r.Close()

	got1, err := r.Next()
	require.NoError(t, err)
	w1, _ := got1.Get("word")
	s1, _ := w1.String()
	require.Equal(t, "hello", s1)

	got2, err := r.Next()
	require.NoError(t, err)
	w2, _ := got2.Get("word")
	s2, _ := w2.String()
	require.Equal(t, "world", s2)

	_, err = r.Next()
	require.ErrorIs(t, err, io.EOF)
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "records.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
