package attendance

import (
	"strings"
	"unicode"
)

// Normalizer canonicalizes raw member names into stable identity keys.
// It is a pure function of its input and the alias table supplied at
// construction; the table is copied and never mutated afterwards, so a
// Normalizer is safe for unsynchronized concurrent use.
type Normalizer struct {
	aliases map[string]string
	display map[string]string
}

// NewNormalizer builds a Normalizer from an alias table mapping raw
// name variants to canonical names. Alias keys are matched against the
// cleaned (bullet-stripped, lowercased, whitespace-collapsed) form of
// the input, so entries are insensitive to case and spacing but may
// contain punctuation. Alias values are normalized once at load.
func NewNormalizer(aliases map[string]string) *Normalizer {
	n := &Normalizer{
		aliases: make(map[string]string, len(aliases)),
		display: make(map[string]string, len(aliases)),
	}
	for raw, canonical := range aliases {
		variant := clean(raw)
		if variant == "" {
			continue
		}
		key := stripPunctuation(clean(canonical))
		if key == "" {
			continue
		}
		n.aliases[variant] = key
		n.display[key] = strings.TrimSpace(canonical)
	}
	return n
}

// Normalize returns the identity key for a raw member-name string.
// Malformed or empty input normalizes to "", which callers must treat
// as "no member".
func (n *Normalizer) Normalize(raw string) string {
	s := clean(raw)
	if s == "" {
		return ""
	}
	if canonical, ok := n.aliases[s]; ok {
		return canonical
	}
	return stripPunctuation(s)
}

// Display returns a human-readable name for a key derived from raw.
// Alias-mapped keys use the canonical spelling from the alias table;
// everything else falls back to the cleaned raw string with its
// original casing.
func (n *Normalizer) Display(key, raw string) string {
	if d, ok := n.display[key]; ok {
		return d
	}
	s := strings.TrimSpace(raw)
	s = strings.TrimSpace(strings.TrimLeft(s, "-*"))
	return strings.Join(strings.Fields(s), " ")
}

// clean strips a single leading bullet marker, lowercases and
// collapses whitespace runs.
func clean(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "*") {
		s = strings.TrimSpace(s[1:])
	}
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// stripPunctuation removes punctuation and symbol runes so spellings
// like "o'brien" and "obrien" share a key.
func stripPunctuation(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// OfficerSet is the fixed, ordered roster of officer identity keys.
// Built once at startup and immutable for the process lifetime.
type OfficerSet struct {
	keys    []string
	display map[string]string
	members map[string]bool
}

// NewOfficerSet normalizes the declared officer names, preserving
// their declaration order and dropping duplicates and empty entries.
func NewOfficerSet(names []string, n *Normalizer) *OfficerSet {
	set := &OfficerSet{
		display: make(map[string]string, len(names)),
		members: make(map[string]bool, len(names)),
	}
	for _, name := range names {
		key := n.Normalize(name)
		if key == "" || set.members[key] {
			continue
		}
		set.members[key] = true
		set.keys = append(set.keys, key)
		set.display[key] = strings.TrimSpace(name)
	}
	return set
}

// Contains reports whether key belongs to the roster.
func (o *OfficerSet) Contains(key string) bool { return o.members[key] }

// Keys returns the officer keys in declaration order.
func (o *OfficerSet) Keys() []string { return o.keys }

// DisplayName returns the declared spelling for an officer key.
func (o *OfficerSet) DisplayName(key string) string { return o.display[key] }

// Len returns the roster size.
func (o *OfficerSet) Len() int { return len(o.keys) }
