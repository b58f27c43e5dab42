// Package domain defines the core domain models for ConnectUS.
//
// Domain models are pure value objects and entities without any
// IO dependencies or framework coupling.
package domain

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// PersonIDPrefix is the prefix for person IDs.
const PersonIDPrefix = "cu-"

// Person is a contact in the address book.
type Person struct {
	// ID is the stable identifier of the contact.
	// Format: cu-{ulid_lowercase}.
	ID string `json:"id" yaml:"id"`

	Name        Name        `json:"name" yaml:"name"`
	Phone       Phone       `json:"phone,omitempty" yaml:"phone,omitempty"`
	Email       Email       `json:"email,omitempty" yaml:"email,omitempty"`
	Address     Address     `json:"address,omitempty" yaml:"address,omitempty"`
	Birthday    Birthday    `json:"birthday,omitempty" yaml:"birthday,omitempty"`
	SocialMedia SocialMedia `json:"social_media" yaml:"social_media"`
	Tags        Tags        `json:"tags" yaml:"tags"`
}

// GeneratePersonID generates a new person ID using ULID.
func GeneratePersonID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", ErrInternal.WithCause(err)
	}
	return PersonIDPrefix + strings.ToLower(id.String()), nil
}

// IsSamePerson reports whether p and other denote the same contact.
// Two contacts are the same when their names match ignoring case.
func (p *Person) IsSamePerson(other *Person) bool {
	if p == other {
		return true
	}
	if p == nil || other == nil {
		return false
	}
	return NameKey(p.Name) == NameKey(other.Name)
}

// NameKey returns the case-insensitive identity key of a name.
func NameKey(n Name) string {
	return strings.ToLower(string(n))
}

// Clone creates a deep copy of the person.
func (p *Person) Clone() *Person {
	clone := *p
	for _, kind := range TagKinds {
		set := p.Tags.Get(kind)
		if set != nil {
			clone.Tags = clone.Tags.With(kind, append(TagSet{}, set...))
		}
	}
	return &clone
}

// Validate checks every set field against its constraint.
// The first violation found is returned.
func (p *Person) Validate() error {
	checks := []struct {
		value string
		ok    func(string) bool
		err   *DomainError
		opt   bool
	}{
		{string(p.Name), IsValidName, ErrNameConstraints, false},
		{string(p.Phone), IsValidPhone, ErrPhoneConstraints, true},
		{string(p.Email), IsValidEmail, ErrEmailConstraints, true},
		{string(p.Address), IsValidAddress, ErrAddressConstraints, true},
		{string(p.Birthday), IsValidBirthday, ErrBirthdayConstraints, true},
		{string(p.SocialMedia.Instagram), IsValidInstagram, ErrInstagramConstraints, true},
		{string(p.SocialMedia.Telegram), IsValidTelegram, ErrTelegramConstraints, true},
		{string(p.SocialMedia.WhatsApp), IsValidWhatsApp, ErrWhatsAppConstraints, true},
	}
	for _, c := range checks {
		if c.opt && c.value == "" {
			continue
		}
		if !c.ok(c.value) {
			return c.err
		}
	}
	for _, kind := range TagKinds {
		for _, tag := range p.Tags.Get(kind) {
			if !IsValidTagName(tag) {
				return kind.ConstraintError()
			}
		}
	}
	return nil
}

// String renders a one-line summary of the person.
func (p *Person) String() string {
	var b strings.Builder
	b.WriteString(string(p.Name))
	field := func(label, value string) {
		if value != "" {
			b.WriteString("; " + label + ": " + value)
		}
	}
	field("Phone", string(p.Phone))
	field("Email", string(p.Email))
	field("Address", string(p.Address))
	field("Birthday", string(p.Birthday))
	field("Social", p.SocialMedia.String())
	for _, kind := range TagKinds {
		if set := p.Tags.Get(kind); len(set) > 0 {
			field(kind.String(), "["+strings.Join(set, ", ")+"]")
		}
	}
	return b.String()
}

// Index is a position in a displayed list, convertible between
// zero-based and one-based forms.
type Index struct {
	zeroBased int
}

// IndexFromZeroBased creates an Index from a zero-based position.
func IndexFromZeroBased(i int) Index { return Index{zeroBased: i} }

// IndexFromOneBased creates an Index from a one-based position.
func IndexFromOneBased(i int) Index { return Index{zeroBased: i - 1} }

// ZeroBased returns the zero-based position.
func (i Index) ZeroBased() int { return i.zeroBased }

// OneBased returns the one-based position.
func (i Index) OneBased() int { return i.zeroBased + 1 }
