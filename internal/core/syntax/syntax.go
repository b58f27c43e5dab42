// Package syntax defines the prefix markers of the ConnectUS command grammar.
package syntax

import "github.com/yndnr/connectus-go/internal/core/domain"

// Prefix is a marker that introduces a field value, e.g. "n/".
type Prefix string

func (p Prefix) String() string { return string(p) }

// Field prefixes.
const (
	Name        Prefix = "n/"
	Phone       Prefix = "p/"
	Email       Prefix = "e/"
	Address     Prefix = "a/"
	Birthday    Prefix = "b/"
	Instagram   Prefix = "ig/"
	Telegram    Prefix = "tg/"
	WhatsApp    Prefix = "wa/"
	Remark      Prefix = "r/"
	Module      Prefix = "mod/"
	Cca         Prefix = "cca/"
	CcaPosition Prefix = "ccapos/"
	Major       Prefix = "maj/"
)

// PersonFields lists the single-valued person field prefixes.
var PersonFields = []Prefix{Name, Phone, Email, Address, Birthday}

// SocialMedia lists the social media prefixes.
var SocialMedia = []Prefix{Instagram, Telegram, WhatsApp}

// Tags lists the repeatable tag prefixes, in domain.TagKinds order.
var Tags = []Prefix{Remark, Module, Cca, CcaPosition, Major}

// All lists every prefix of the grammar.
var All = concat(PersonFields, SocialMedia, Tags)

var tagPrefixKinds = map[Prefix]domain.TagKind{
	Remark:      domain.TagRemark,
	Module:      domain.TagModule,
	Cca:         domain.TagCca,
	CcaPosition: domain.TagCcaPosition,
	Major:       domain.TagMajor,
}

// TagKind returns the tag category introduced by p.
func TagKind(p Prefix) (domain.TagKind, bool) {
	kind, ok := tagPrefixKinds[p]
	return kind, ok
}

// TagPrefix returns the prefix of a tag category.
func TagPrefix(kind domain.TagKind) Prefix {
	for p, k := range tagPrefixKinds {
		if k == kind {
			return p
		}
	}
	return Remark
}

func concat(groups ...[]Prefix) []Prefix {
	var all []Prefix
	for _, g := range groups {
		all = append(all, g...)
	}
	return all
}
