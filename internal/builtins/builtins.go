// Package builtins ships a small library of ready-to-use mapper/reducer
// callbacks, mirroring the word-count example bundled with the original
// compute-graph implementation (examples/word_count/word_count.py): a
// tokenizing mapper that turns a "text" field into one {doc_id, word}
// record per alphabetic token, and a reducer that counts occurrences of
// each word within a pre-grouped (doc_id, word) block.
package builtins

import (
	"regexp"
	"strings"

	"github.com/marachen/relflow/pkg/record"
)

var wordPattern = regexp.MustCompile(`[a-zA-Z]+`)

// TokenizeWords is a MapperFunc: for each input record, it extracts every
// alphabetic token from the "text" field, lower-cased, and emits one
// {doc_id, word} record per token. Records without a "text" field yield no
// output.
func TokenizeWords(r record.Record) ([]record.Record, error) {
	textVal, ok := r.Get("text")
	if !ok {
		return nil, nil
	}
	text, ok := textVal.String()
	if !ok {
		return nil, nil
	}

	docVal, _ := r.Get("doc_id")

	tokens := wordPattern.FindAllString(text, -1)
	out := make([]record.Record, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, record.Record{
			"doc_id": docVal,
			"word":   record.String(strings.ToLower(tok)),
		})
	}
	return out, nil
}

// CountWordsInGroup is a ReducerFunc over a group pre-sorted and grouped by
// (doc_id, word): it emits exactly one {doc_id, word, n} record, n being
// the group's size.
func CountWordsInGroup(group []record.Record) ([]record.Record, error) {
	first := group[0]
	docVal, _ := first.Get("doc_id")
	wordVal, _ := first.Get("word")
	return []record.Record{{
		"doc_id": docVal,
		"word":   wordVal,
		"n":      record.Int(int64(len(group))),
	}}, nil
}
