package model

import "strings"

// ProductFilter is the shared filter object both backends compile from.
// One filter type, two compilation targets: SQL clauses on the direct
// connection, PostgREST query-string operators on the REST path.
type ProductFilter struct {
	Category string
	Tags     string // comma-separated; only the first trimmed token is matched
	Language string
	Status   string
	Search   string
	Limit    *int
	Offset   *int
}

// FirstTag returns the first comma-separated tag token, trimmed. An
// empty token disables the tag filter.
func (f ProductFilter) FirstTag() string {
	tag, _, _ := strings.Cut(f.Tags, ",")
	return strings.TrimSpace(tag)
}
