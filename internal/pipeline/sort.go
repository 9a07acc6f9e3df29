package pipeline

import (
	"io"
	"sort"

	relflowerrors "github.com/marachen/relflow/pkg/errors"
	"github.com/marachen/relflow/pkg/record"
)

// sortStream fully buffers its input on first pull, then emits it ordered
// lexicographically by the key tuple. Uses a stable sort so ties preserve
// input order, which keeps downstream Reduce groupings deterministic.
type sortStream struct {
	upstream Stream
	keys     []string

	loaded  bool
	loadErr error
	records []record.Record
	pos     int
}

func newSortStream(upstream Stream, keys []string) *sortStream {
	return &sortStream{upstream: upstream, keys: keys}
}

func (s *sortStream) Close() error { return s.upstream.Close() }

func (s *sortStream) Next() (record.Record, error) {
	if !s.loaded {
		s.loadErr = s.load()
		s.loaded = true
	}
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if s.pos >= len(s.records) {
		return nil, io.EOF
	}
	r := s.records[s.pos]
	s.pos++
	return r, nil
}

func (s *sortStream) load() error {
	var buffered []record.Record
	for {
		r, err := s.upstream.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		buffered = append(buffered, r)
	}

	type indexed struct {
		rec record.Record
		key []record.Value
	}
	items := make([]indexed, len(buffered))
	for i, r := range buffered {
		if field, missing := record.FirstMissingKey(r, s.keys); missing {
			return relflowerrors.NewMissingFieldError("sort", field)
		}
		key, _ := record.Key(r, s.keys)
		items[i] = indexed{rec: r, key: key}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return record.CompareKeys(items[i].key, items[j].key) < 0
	})

	out := make([]record.Record, len(items))
	for i, it := range items {
		out[i] = it.rec
	}
	s.records = out
	return nil
}
