package capability

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"
)

// ErrMalformedTag is returned when a capability tag cannot be resolved at
// load time. Malformed tags are never skipped: a typo in a tag would
// otherwise silently make a unit untargetable.
var ErrMalformedTag = errors.New("malformed capability tag")

// Tag is a normalized capability label such as "infantry" or "anti-armor".
type Tag string

// Any is the default targetable type of every AI-queryable actor.
const Any Tag = "any"

// Prefixes accepted in the flat `tags` form of a definition.
const (
	PrefixAttacking    = "attacking-"
	PrefixAttackable   = "attackable-"
	PrefixUnattackable = "unattackable-"
	PrefixTargetable   = "targetable-"
)

// ParseTag normalizes raw and rejects empty or whitespace-containing labels.
func ParseTag(raw string) (Tag, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", fmt.Errorf("%w: empty tag %q", ErrMalformedTag, raw)
	}
	if strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return "", fmt.Errorf("%w: %q contains whitespace", ErrMalformedTag, raw)
	}
	return Tag(s), nil
}

// TagSet is an unordered set of tags.
type TagSet map[Tag]struct{}

// NewTagSet builds a set from already-normalized tags.
func NewTagSet(tags ...Tag) TagSet {
	s := make(TagSet, len(tags))
	for _, t := range tags {
		s[t] = struct{}{}
	}
	return s
}

// ParseTagSet parses every entry of raw, failing on the first malformed one.
func ParseTagSet(raw []string) (TagSet, error) {
	s := make(TagSet, len(raw))
	for _, r := range raw {
		t, err := ParseTag(r)
		if err != nil {
			return nil, err
		}
		s[t] = struct{}{}
	}
	return s, nil
}

func (s TagSet) Has(t Tag) bool {
	_, ok := s[t]
	return ok
}

func (s TagSet) Len() int { return len(s) }

// Intersects reports whether the two sets share at least one tag.
func (s TagSet) Intersects(o TagSet) bool {
	small, large := s, o
	if len(large) < len(small) {
		small, large = large, small
	}
	for t := range small {
		if large.Has(t) {
			return true
		}
	}
	return false
}

// Sorted returns the tags in lexical order, for logging and tests.
func (s TagSet) Sorted() []Tag {
	out := make([]Tag, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

func (s TagSet) add(t Tag) { s[t] = struct{}{} }
