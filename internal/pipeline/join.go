package pipeline

import (
	"fmt"
	"io"
	"sort"
	"strings"

	relflowerrors "github.com/marachen/relflow/pkg/errors"
	"github.com/marachen/relflow/pkg/record"
)

// joinStream performs a keyed relational join between the upstream (left)
// stream and spec.other's stream (right). It is fully blocking: both sides
// are buffered, sorted, and grouped by key before any output is produced.
type joinStream struct {
	upstream Stream
	spec     *joinSpec

	loaded  bool
	loadErr error
	output  []record.Record
	pos     int
}

func newJoinStream(upstream Stream, spec *joinSpec) (Stream, error) {
	return &joinStream{upstream: upstream, spec: spec}, nil
}

// Close releases the left-hand upstream. The right-hand side (spec.other's
// own Stream) is never left open across a Close call: load closes it before
// returning, whether or not draining it succeeded.
func (j *joinStream) Close() error { return j.upstream.Close() }

func (j *joinStream) Next() (record.Record, error) {
	if !j.loaded {
		j.loadErr = j.load()
		j.loaded = true
	}
	if j.loadErr != nil {
		return nil, j.loadErr
	}
	if j.pos >= len(j.output) {
		return nil, io.EOF
	}
	r := j.output[j.pos]
	j.pos++
	return r, nil
}

type keyGroup struct {
	key     []record.Value
	records []record.Record
}

func (j *joinStream) load() error {
	left, err := drain(j.upstream)
	if err != nil {
		return err
	}

	rightStream, err := j.spec.other.Stream()
	if err != nil {
		return err
	}
	defer rightStream.Close()
	right, err := drain(rightStream)
	if err != nil {
		return err
	}

	leftGroups, err := groupByKey(left, j.spec.keys, "join")
	if err != nil {
		return err
	}
	rightGroups, err := groupByKey(right, j.spec.keys, "join")
	if err != nil {
		return err
	}

	leftIndex := indexGroups(leftGroups)
	rightIndex := indexGroups(rightGroups)

	var out []record.Record
	for _, lg := range leftGroups {
		ri, ok := rightIndex[keyString(lg.key)]
		if !ok {
			continue
		}
		rg := rightGroups[ri]
		for _, l := range lg.records {
			for _, r := range rg.records {
				out = append(out, record.Merge(l, r))
			}
		}
	}

	switch j.spec.strategy {
	case JoinInner:
		// nothing more to add
	case JoinLeft:
		out = append(out, additions(leftGroups, rightIndex, right, j.spec.keys)...)
	case JoinRight:
		out = append(out, additions(rightGroups, leftIndex, left, j.spec.keys)...)
	case JoinOuter:
		out = append(out, additions(leftGroups, rightIndex, right, j.spec.keys)...)
		out = append(out, additions(rightGroups, leftIndex, left, j.spec.keys)...)
	default:
		return relflowerrors.NewUnknownJoinStrategyError(j.spec.strategy.String())
	}

	j.output = out
	return nil
}

// additions returns, for each group in base whose key has no entry in
// otherIndex, every one of its records extended with null for each field
// of otherSample (sampled from any one record of the opposite side) that
// is not already present and not a join key. If the opposite side is
// entirely empty, records pass through unchanged.
func additions(base []keyGroup, otherIndex map[string]int, otherSide []record.Record, keys []string) []record.Record {
	var extra []string
	if len(otherSide) > 0 {
		keySet := make(map[string]bool, len(keys))
		for _, k := range keys {
			keySet[k] = true
		}
		for _, f := range otherSide[0].Fields() {
			if !keySet[f] {
				extra = append(extra, f)
			}
		}
	}

	var out []record.Record
	for _, g := range base {
		if _, matched := otherIndex[keyString(g.key)]; matched {
			continue
		}
		for _, rec := range g.records {
			ext := rec
			for _, f := range extra {
				if _, present := ext.Get(f); !present {
					ext = ext.With(f, record.Null())
				}
			}
			out = append(out, ext)
		}
	}
	return out
}

func groupByKey(records []record.Record, keys []string, opName string) ([]keyGroup, error) {
	type indexed struct {
		rec record.Record
		key []record.Value
	}
	items := make([]indexed, len(records))
	for i, r := range records {
		field, missing := record.FirstMissingKey(r, keys)
		if missing {
			return nil, relflowerrors.NewMissingFieldError(opName, field)
		}
		key, _ := record.Key(r, keys)
		items[i] = indexed{rec: r, key: key}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return record.CompareKeys(items[i].key, items[j].key) < 0
	})

	var groups []keyGroup
	for _, it := range items {
		if n := len(groups); n > 0 && record.KeysEqual(groups[n-1].key, it.key) {
			groups[n-1].records = append(groups[n-1].records, it.rec)
			continue
		}
		groups = append(groups, keyGroup{key: it.key, records: []record.Record{it.rec}})
	}
	return groups, nil
}

func indexGroups(groups []keyGroup) map[string]int {
	idx := make(map[string]int, len(groups))
	for i, g := range groups {
		idx[keyString(g.key)] = i
	}
	return idx
}

// keyString renders a key tuple as a map lookup key, consistent with
// record.Compare's equality: integers and floats with the same numeric
// value render identically, so a left key of kind int matches a right key
// of kind float carrying the same number.
func keyString(key []record.Value) string {
	var b strings.Builder
	for _, v := range key {
		switch v.Kind() {
		case record.KindNull:
			b.WriteString("n:")
		case record.KindBool:
			bv, _ := v.Bool()
			fmt.Fprintf(&b, "b:%v", bv)
		case record.KindInt, record.KindFloat:
			fv, _ := v.Float()
			fmt.Fprintf(&b, "f:%v", fv)
		case record.KindString:
			sv, _ := v.String()
			fmt.Fprintf(&b, "s:%v", sv)
		}
		b.WriteByte('|')
	}
	return b.String()
}
