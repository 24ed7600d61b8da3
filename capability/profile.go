package capability

import (
	"fmt"
	"strings"
)

// Profile describes what an actor type can attack and what it can be
// attacked as. Profiles are built once per actor type and shared by pointer.
type Profile struct {
	// AttackCategories groups attackers, e.g. "anti-infantry" or "hit-and-run".
	AttackCategories TagSet
	// AttackableTypes are matched against the TargetableTypes of candidates.
	AttackableTypes TagSet
	// UnattackableTypes exclude candidates regardless of AttackableTypes.
	UnattackableTypes TagSet
	// TargetableTypes defaults to {"any"}.
	TargetableTypes TagSet
}

// CanTarget reports whether an attacker with profile p may pick a candidate
// with profile c based on tags alone.
func (p *Profile) CanTarget(c *Profile) bool {
	if p == nil || c == nil {
		return false
	}
	if !p.AttackableTypes.Intersects(c.TargetableTypes) {
		return false
	}
	return !p.UnattackableTypes.Intersects(c.TargetableTypes)
}

// InCategories reports whether the profile's attack categories intersect
// allow. An empty allow-list accepts every profile.
func (p *Profile) InCategories(allow TagSet) bool {
	if len(allow) == 0 {
		return true
	}
	return p != nil && p.AttackCategories.Intersects(allow)
}

// Definition is the YAML form of a profile. Tags in the flat Tags list carry
// a prefix naming the set they belong to, e.g. "attackable-infantry".
type Definition struct {
	AttackCategories  []string `yaml:"attack-categories"`
	AttackableTypes   []string `yaml:"attackable-types"`
	UnattackableTypes []string `yaml:"unattackable-types"`
	TargetableTypes   []string `yaml:"targetable-types"`
	Tags              []string `yaml:"tags"`
}

// Resolve turns a definition into a typed profile, rejecting malformed tags.
func (d Definition) Resolve() (*Profile, error) {
	p := &Profile{}
	var err error
	if p.AttackCategories, err = ParseTagSet(d.AttackCategories); err != nil {
		return nil, fmt.Errorf("attack-categories: %w", err)
	}
	if p.AttackableTypes, err = ParseTagSet(d.AttackableTypes); err != nil {
		return nil, fmt.Errorf("attackable-types: %w", err)
	}
	if p.UnattackableTypes, err = ParseTagSet(d.UnattackableTypes); err != nil {
		return nil, fmt.Errorf("unattackable-types: %w", err)
	}
	if p.TargetableTypes, err = ParseTagSet(d.TargetableTypes); err != nil {
		return nil, fmt.Errorf("targetable-types: %w", err)
	}

	for _, raw := range d.Tags {
		set, rest, err := splitPrefixed(raw)
		if err != nil {
			return nil, err
		}
		t, err := ParseTag(rest)
		if err != nil {
			return nil, fmt.Errorf("tag %q: %w", raw, err)
		}
		switch set {
		case PrefixAttacking:
			p.AttackCategories.add(t)
		case PrefixAttackable:
			p.AttackableTypes.add(t)
		case PrefixUnattackable:
			p.UnattackableTypes.add(t)
		case PrefixTargetable:
			p.TargetableTypes.add(t)
		}
	}

	if p.TargetableTypes.Len() == 0 {
		p.TargetableTypes = NewTagSet(Any)
	}
	return p, nil
}

func splitPrefixed(raw string) (string, string, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	for _, p := range []string{PrefixUnattackable, PrefixAttackable, PrefixAttacking, PrefixTargetable} {
		if rest, ok := strings.CutPrefix(s, p); ok {
			return p, rest, nil
		}
	}
	return "", "", fmt.Errorf("%w: %q has no known prefix", ErrMalformedTag, raw)
}
