package record

import "sort"

// Record is an unordered association from field name to a dynamically typed
// scalar value. Records are treated as immutable once produced: every
// method here that "modifies" a record returns a new one.
type Record map[string]Value

// New builds a Record from a plain map of Go values, converting each value
// with Of.
func New(fields map[string]interface{}) (Record, error) {
	r := make(Record, len(fields))
	for k, v := range fields {
		val, err := Of(v)
		if err != nil {
			return nil, err
		}
		r[k] = val
	}
	return r, nil
}

// Get returns the value stored under field and whether it was present.
func (r Record) Get(field string) (Value, bool) {
	v, ok := r[field]
	return v, ok
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	if r == nil {
		return Record{}
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// With returns a copy of the record with field set to value.
func (r Record) With(field string, value Value) Record {
	out := r.Clone()
	out[field] = value
	return out
}

// Fields returns the record's field names in sorted order, for deterministic
// iteration (serialization, diagnostics).
func (r Record) Fields() []string {
	names := make([]string, 0, len(r))
	for k := range r {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Merge returns a new record containing the fields of both a and b; fields
// present in both take their value from b (used by join: right overwrites
// left outside the join keys).
func Merge(a, b Record) Record {
	out := make(Record, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Key extracts the ordered tuple of values for keys, in the order given.
// Returns ok=false if any key field is absent from the record.
func Key(r Record, keys []string) (tuple []Value, ok bool) {
	tuple = make([]Value, len(keys))
	for i, k := range keys {
		v, present := r[k]
		if !present {
			return nil, false
		}
		tuple[i] = v
	}
	return tuple, true
}

// FirstMissingKey returns the first field in keys absent from r, if any.
func FirstMissingKey(r Record, keys []string) (string, bool) {
	for _, k := range keys {
		if _, ok := r[k]; !ok {
			return k, true
		}
	}
	return "", false
}

// CompareKeys lexicographically compares two key tuples. When one tuple is a
// prefix of the other, the shorter one orders first.
func CompareKeys(a, b []Value) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}

// KeysEqual reports whether two key tuples compare equal.
func KeysEqual(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
