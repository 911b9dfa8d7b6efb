package model

import "sort"

// Record is one parsed corpus entry: a flat map of field name to field value.
// The schema is defined by the corpus, not by this package. Fields are read by name
// through the accessors below, which supply a default when the field is absent.
// Example: rec["Subject"], rec.GetOr("ID", "not specified")
type Record map[string]string

// Get returns the value stored under field, or "" if the field is absent.
func (r Record) Get(field string) string {
	return r[field]
}

// GetOr returns the value stored under field, or def if the field is absent.
// A field that is present with an empty value is returned as-is.
func (r Record) GetOr(field, def string) string {
	if v, ok := r[field]; ok {
		return v
	}
	return def
}

// Has reports whether the record carries the field.
func (r Record) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// Keys returns the record's field names in lexical order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
