package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Report is the outcome of linting one document.
type Report struct {
	Document string           `json:"document"`
	Path     string           `json:"path,omitempty"`
	Revision string           `json:"revision,omitempty"`
	Modified bool             `json:"modified,omitempty"`
	Tree     []SerializedNode `json:"tree"`
	Records  []FlatRecord     `json:"errors"`
	Ignored  int              `json:"ignored,omitempty"`
}

// IssueCount returns the number of diagnostics across all records.
func (r Report) IssueCount() int {
	n := 0
	for _, rec := range r.Records {
		n += len(rec.Diagnostics)
	}
	return n
}

// CountByCategory tallies diagnostics per category.
func (r Report) CountByCategory() map[Category]int {
	counts := make(map[Category]int)
	for _, rec := range r.Records {
		for _, d := range rec.Diagnostics {
			counts[d.Category]++
		}
	}
	return counts
}

// DiagnosticsByNode indexes records by node identifier.
func (r Report) DiagnosticsByNode() map[string][]Diagnostic {
	out := make(map[string][]Diagnostic, len(r.Records))
	for _, rec := range r.Records {
		out[rec.NodeID] = rec.Diagnostics
	}
	return out
}

// WithoutIgnored returns a copy of r with every diagnostic whose IgnoreKey is
// in ignored removed. Records themselves are kept.
func (r Report) WithoutIgnored(ignored IgnoreSet) Report {
	if len(ignored) == 0 {
		return r
	}
	out := r
	out.Records = make([]FlatRecord, len(r.Records))
	for i, rec := range r.Records {
		kept := make([]Diagnostic, 0, len(rec.Diagnostics))
		for _, d := range rec.Diagnostics {
			if ignored.Has(d.IgnoreKey()) {
				out.Ignored++
				continue
			}
			kept = append(kept, d)
		}
		rec.Diagnostics = kept
		out.Records[i] = rec
	}
	return out
}

// IgnoreSet is the set of ignored diagnostic keys, as "<nodeId>:<category>".
type IgnoreSet map[string]struct{}

// ParseIgnoreSet decodes a stored ignored-errors array. Empty input is an
// empty set.
func ParseIgnoreSet(stored string) (IgnoreSet, error) {
	set := IgnoreSet{}
	if strings.TrimSpace(stored) == "" {
		return set, nil
	}
	var keys []string
	if err := json.Unmarshal([]byte(stored), &keys); err != nil {
		return nil, fmt.Errorf("decoding ignored errors: %w", err)
	}
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set, nil
}

// ParseIgnoreKey splits "<nodeId>:<category>". Node identifiers may contain
// colons, so the category is taken after the last one.
func ParseIgnoreKey(key string) (nodeID string, category Category, err error) {
	i := strings.LastIndex(key, ":")
	if i <= 0 || i == len(key)-1 {
		return "", "", fmt.Errorf("ignore key %q must look like <nodeId>:<category>", key)
	}
	nodeID, cat := key[:i], key[i+1:]
	if !IsValidCategory(cat) {
		return "", "", fmt.Errorf("ignore key %q: unknown category %q", key, cat)
	}
	return nodeID, Category(cat), nil
}

func (s IgnoreSet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

func (s IgnoreSet) Add(key string) { s[key] = struct{}{} }

// Keys returns the keys in sorted order.
func (s IgnoreSet) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Encode returns the stored form of the set.
func (s IgnoreSet) Encode() json.RawMessage {
	data, _ := json.Marshal(s.Keys())
	return data
}

// RunEntry records one lint run for the history log.
type RunEntry struct {
	Timestamp  string           `json:"timestamp"`
	Document   string           `json:"document"`
	Revision   string           `json:"revision,omitempty"`
	Issues     int              `json:"issues"`
	Ignored    int              `json:"ignored,omitempty"`
	ByCategory map[Category]int `json:"by_category,omitempty"`
}

// NewRunEntry summarizes r for the history log.
func NewRunEntry(r Report, timestamp string) RunEntry {
	return RunEntry{
		Timestamp:  timestamp,
		Document:   r.Document,
		Revision:   r.Revision,
		Issues:     r.IssueCount(),
		Ignored:    r.Ignored,
		ByCategory: r.CountByCategory(),
	}
}
