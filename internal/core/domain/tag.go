package domain

import (
	"regexp"
	"slices"
)

const (
	RemarkConstraints      = "Remarks should be alphanumeric with spaces"
	ModuleConstraints      = "Module names should be alphanumeric with spaces"
	CcaConstraints         = "CCA names should be alphanumeric with spaces"
	CcaPositionConstraints = "CCA position names should be alphanumeric with spaces"
	MajorConstraints       = "Major names should be alphanumeric with spaces"
)

var tagRegexp = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 ]*$`)

// IsValidTagName reports whether s is a valid tag of any category.
func IsValidTagName(s string) bool { return tagRegexp.MatchString(s) }

// TagKind identifies a tag category.
type TagKind int

const (
	TagRemark TagKind = iota
	TagModule
	TagCca
	TagCcaPosition
	TagMajor
)

// TagKinds lists every tag category in display order.
var TagKinds = []TagKind{TagRemark, TagModule, TagCca, TagCcaPosition, TagMajor}

var tagKindNames = map[TagKind]string{
	TagRemark:      "remark",
	TagModule:      "module",
	TagCca:         "cca",
	TagCcaPosition: "cca position",
	TagMajor:       "major",
}

func (k TagKind) String() string {
	if name, ok := tagKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ConstraintError returns the validation error of the category.
func (k TagKind) ConstraintError() *DomainError {
	switch k {
	case TagModule:
		return ErrModuleConstraints
	case TagCca:
		return ErrCcaConstraints
	case TagCcaPosition:
		return ErrCcaPositionConstraints
	case TagMajor:
		return ErrMajorConstraints
	default:
		return ErrRemarkConstraints
	}
}

// TagSet is a set of tag names. It is kept sorted and free of duplicates,
// so positional access (for tag deletion) is deterministic.
type TagSet []string

// NewTagSet builds a TagSet from names.
func NewTagSet(names ...string) TagSet {
	if len(names) == 0 {
		return TagSet{}
	}
	set := slices.Clone(names)
	slices.Sort(set)
	return slices.Compact(set)
}

// Contains reports whether name is in the set.
func (s TagSet) Contains(name string) bool {
	_, found := slices.BinarySearch(s, name)
	return found
}

// Union returns a new set holding the tags of s and other.
func (s TagSet) Union(other TagSet) TagSet {
	return NewTagSet(append(slices.Clone(s), other...)...)
}

// RemoveAt returns a new set without the tag at zero-based position i.
func (s TagSet) RemoveAt(i int) (TagSet, bool) {
	if i < 0 || i >= len(s) {
		return s, false
	}
	return slices.Delete(slices.Clone(s), i, i+1), true
}

// Tags holds a person's tags grouped by category.
type Tags struct {
	Remarks      TagSet `json:"remarks,omitempty" yaml:"remarks,omitempty"`
	Modules      TagSet `json:"modules,omitempty" yaml:"modules,omitempty"`
	Ccas         TagSet `json:"ccas,omitempty" yaml:"ccas,omitempty"`
	CcaPositions TagSet `json:"cca_positions,omitempty" yaml:"cca_positions,omitempty"`
	Majors       TagSet `json:"majors,omitempty" yaml:"majors,omitempty"`
}

// Get returns the set of the given category.
func (t Tags) Get(kind TagKind) TagSet {
	switch kind {
	case TagModule:
		return t.Modules
	case TagCca:
		return t.Ccas
	case TagCcaPosition:
		return t.CcaPositions
	case TagMajor:
		return t.Majors
	default:
		return t.Remarks
	}
}

// With returns a copy of t whose category kind is replaced by set.
func (t Tags) With(kind TagKind, set TagSet) Tags {
	switch kind {
	case TagModule:
		t.Modules = set
	case TagCca:
		t.Ccas = set
	case TagCcaPosition:
		t.CcaPositions = set
	case TagMajor:
		t.Majors = set
	default:
		t.Remarks = set
	}
	return t
}

// Union merges every category of other into t.
func (t Tags) Union(other Tags) Tags {
	for _, kind := range TagKinds {
		t = t.With(kind, t.Get(kind).Union(other.Get(kind)))
	}
	return t
}

// IsEmpty reports whether no category holds a tag.
func (t Tags) IsEmpty() bool {
	for _, kind := range TagKinds {
		if len(t.Get(kind)) > 0 {
			return false
		}
	}
	return true
}
