package parser

import (
	"strconv"
	"strings"

	"github.com/yndnr/connectus-go/internal/core/domain"
	"github.com/yndnr/connectus-go/internal/core/syntax"
)

// ParseIndex parses a one-based index. Surrounding whitespace is ignored.
func ParseIndex(s string) (domain.Index, error) {
	s = strings.TrimSpace(s)
	if !isNonZeroUnsignedInteger(s) {
		return domain.Index{}, domain.ErrInvalidIndex
	}
	n, _ := strconv.ParseInt(s, 10, 32)
	return domain.IndexFromOneBased(int(n)), nil
}

func isNonZeroUnsignedInteger(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	// Indexes are 32-bit; larger values are malformed, not out of range.
	n, err := strconv.ParseInt(s, 10, 32)
	return err == nil && n > 0
}

// ParseKeywords splits s on whitespace. Blank input yields nil.
func ParseKeywords(s string) []string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func parseField[T ~string](s string, valid func(string) bool, errInvalid *domain.DomainError) (T, error) {
	s = strings.TrimSpace(s)
	if !valid(s) {
		return "", errInvalid
	}
	return T(s), nil
}

// ParseName parses a Name.
func ParseName(s string) (domain.Name, error) {
	return parseField[domain.Name](s, domain.IsValidName, domain.ErrNameConstraints)
}

// ParsePhone parses a Phone.
func ParsePhone(s string) (domain.Phone, error) {
	return parseField[domain.Phone](s, domain.IsValidPhone, domain.ErrPhoneConstraints)
}

// ParseEmail parses an Email.
func ParseEmail(s string) (domain.Email, error) {
	return parseField[domain.Email](s, domain.IsValidEmail, domain.ErrEmailConstraints)
}

// ParseAddress parses an Address.
func ParseAddress(s string) (domain.Address, error) {
	return parseField[domain.Address](s, domain.IsValidAddress, domain.ErrAddressConstraints)
}

// ParseBirthday parses a Birthday in DD/MM/YYYY form.
func ParseBirthday(s string) (domain.Birthday, error) {
	return parseField[domain.Birthday](s, domain.IsValidBirthday, domain.ErrBirthdayConstraints)
}

// ParseInstagram parses an Instagram handle.
func ParseInstagram(s string) (domain.Instagram, error) {
	return parseField[domain.Instagram](s, domain.IsValidInstagram, domain.ErrInstagramConstraints)
}

// ParseTelegram parses a Telegram handle.
func ParseTelegram(s string) (domain.Telegram, error) {
	return parseField[domain.Telegram](s, domain.IsValidTelegram, domain.ErrTelegramConstraints)
}

// ParseWhatsApp parses a WhatsApp number.
func ParseWhatsApp(s string) (domain.WhatsApp, error) {
	return parseField[domain.WhatsApp](s, domain.IsValidWhatsApp, domain.ErrWhatsAppConstraints)
}

// ParseTag parses one tag of the given category.
func ParseTag(kind domain.TagKind, s string) (string, error) {
	s = strings.TrimSpace(s)
	if !domain.IsValidTagName(s) {
		return "", kind.ConstraintError()
	}
	return s, nil
}

// ParseTags parses every value into a tag set of the given category.
// The first invalid value is reported.
func ParseTags(kind domain.TagKind, values []string) (domain.TagSet, error) {
	names := make([]string, 0, len(values))
	for _, v := range values {
		name, err := ParseTag(kind, v)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return domain.NewTagSet(names...), nil
}

// ParseTagsOptional parses values for an edit. No values means the
// category is not edited (ok is false). A single empty value clears the
// category.
func ParseTagsOptional(kind domain.TagKind, values []string) (set domain.TagSet, ok bool, err error) {
	if len(values) == 0 {
		return nil, false, nil
	}
	if len(values) == 1 && values[0] == "" {
		return domain.NewTagSet(), true, nil
	}
	set, err = ParseTags(kind, values)
	if err != nil {
		return nil, false, err
	}
	return set, true, nil
}

// ParseRemark parses a remark tag.
func ParseRemark(s string) (string, error) { return ParseTag(domain.TagRemark, s) }

// ParseModule parses a module tag.
func ParseModule(s string) (string, error) { return ParseTag(domain.TagModule, s) }

// ParseCca parses a CCA tag.
func ParseCca(s string) (string, error) { return ParseTag(domain.TagCca, s) }

// ParseCcaPosition parses a CCA position tag.
func ParseCcaPosition(s string) (string, error) { return ParseTag(domain.TagCcaPosition, s) }

// ParseMajor parses a major tag.
func ParseMajor(s string) (string, error) { return ParseTag(domain.TagMajor, s) }

// ParseRemarks parses remark tags.
func ParseRemarks(values []string) (domain.TagSet, error) { return ParseTags(domain.TagRemark, values) }

// ParseModules parses module tags.
func ParseModules(values []string) (domain.TagSet, error) { return ParseTags(domain.TagModule, values) }

// ParseCcas parses CCA tags.
func ParseCcas(values []string) (domain.TagSet, error) { return ParseTags(domain.TagCca, values) }

// ParseCcaPositions parses CCA position tags.
func ParseCcaPositions(values []string) (domain.TagSet, error) {
	return ParseTags(domain.TagCcaPosition, values)
}

// ParseMajors parses major tags.
func ParseMajors(values []string) (domain.TagSet, error) { return ParseTags(domain.TagMajor, values) }

// ParseAllTags parses the values of every tag prefix in m.
func ParseAllTags(m *ArgumentMultimap) (domain.Tags, error) {
	var tags domain.Tags
	for _, kind := range domain.TagKinds {
		set, err := ParseTags(kind, m.AllValues(syntax.TagPrefix(kind)))
		if err != nil {
			return domain.Tags{}, err
		}
		tags = tags.With(kind, set)
	}
	return tags, nil
}

// ParseSocialMedia parses the social media prefixes of m. A missing or
// empty prefix leaves that handle unset.
func ParseSocialMedia(m *ArgumentMultimap) (domain.SocialMedia, error) {
	var sm domain.SocialMedia
	var err error

	if v, ok := m.Value(syntax.Instagram); ok && v != "" {
		if sm.Instagram, err = ParseInstagram(v); err != nil {
			return domain.SocialMedia{}, err
		}
	}
	if v, ok := m.Value(syntax.Telegram); ok && v != "" {
		if sm.Telegram, err = ParseTelegram(v); err != nil {
			return domain.SocialMedia{}, err
		}
	}
	if v, ok := m.Value(syntax.WhatsApp); ok && v != "" {
		if sm.WhatsApp, err = ParseWhatsApp(v); err != nil {
			return domain.SocialMedia{}, err
		}
	}
	return sm, nil
}

// parseOptional parses the value of p for an edit. A missing prefix
// yields nil. An empty value yields a pointer to the zero value, which
// clears the field.
func parseOptional[T ~string](m *ArgumentMultimap, p syntax.Prefix, parse func(string) (T, error)) (*T, error) {
	v, ok := m.Value(p)
	if !ok {
		return nil, nil
	}
	var out T
	if v == "" {
		return &out, nil
	}
	out, err := parse(v)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
