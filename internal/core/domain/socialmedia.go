package domain

import (
	"regexp"
	"strings"
)

const (
	InstagramConstraints = "Instagram usernames should be 1 to 30 characters long, " +
		"only contain alphanumeric characters, underscores and periods, " +
		"and should not start or end with a period or contain consecutive periods"

	TelegramConstraints = "Telegram usernames should be 5 to 32 characters long " +
		"and only contain alphanumeric characters and underscores"

	WhatsAppConstraints = "WhatsApp numbers should only contain numbers, and it should be at least 3 digits long"
)

const maxInstagramLength = 30

var (
	instagramCharsRegexp = regexp.MustCompile(`^[A-Za-z0-9_.]+$`)
	telegramRegexp       = regexp.MustCompile(`^[A-Za-z0-9_]{5,32}$`)
	whatsAppRegexp       = regexp.MustCompile(`^\d{3,}$`)
)

// Instagram is an Instagram username.
type Instagram string

// IsValidInstagram reports whether s is a valid Instagram username.
func IsValidInstagram(s string) bool {
	if len(s) == 0 || len(s) > maxInstagramLength {
		return false
	}
	if !instagramCharsRegexp.MatchString(s) {
		return false
	}
	if strings.HasPrefix(s, ".") || strings.HasSuffix(s, ".") {
		return false
	}
	return !strings.Contains(s, "..")
}

// Link returns the profile URL.
func (i Instagram) Link() string { return "https://instagram.com/" + string(i) }

// Telegram is a Telegram username.
type Telegram string

// IsValidTelegram reports whether s is a valid Telegram username.
func IsValidTelegram(s string) bool { return telegramRegexp.MatchString(s) }

// Link returns the profile URL.
func (t Telegram) Link() string { return "https://t.me/" + string(t) }

// WhatsApp is a WhatsApp phone number.
type WhatsApp string

// IsValidWhatsApp reports whether s is a valid WhatsApp number.
func IsValidWhatsApp(s string) bool { return whatsAppRegexp.MatchString(s) }

// Link returns the chat URL.
func (w WhatsApp) Link() string { return "https://wa.me/" + string(w) }

// SocialMedia groups a person's optional social media handles.
// An empty string means the handle is absent.
type SocialMedia struct {
	Instagram Instagram `json:"instagram,omitempty" yaml:"instagram,omitempty"`
	Telegram  Telegram  `json:"telegram,omitempty" yaml:"telegram,omitempty"`
	WhatsApp  WhatsApp  `json:"whatsapp,omitempty" yaml:"whatsapp,omitempty"`
}

// IsBlank reports whether no handle is set.
func (s SocialMedia) IsBlank() bool {
	return s.Instagram == "" && s.Telegram == "" && s.WhatsApp == ""
}

// Merge returns s with every handle set in other overriding the one in s.
func (s SocialMedia) Merge(other SocialMedia) SocialMedia {
	if other.Instagram != "" {
		s.Instagram = other.Instagram
	}
	if other.Telegram != "" {
		s.Telegram = other.Telegram
	}
	if other.WhatsApp != "" {
		s.WhatsApp = other.WhatsApp
	}
	return s
}

// String renders the set handles, e.g. "ig: alice, tg: alice_tg".
func (s SocialMedia) String() string {
	var parts []string
	if s.Instagram != "" {
		parts = append(parts, "ig: "+string(s.Instagram))
	}
	if s.Telegram != "" {
		parts = append(parts, "tg: "+string(s.Telegram))
	}
	if s.WhatsApp != "" {
		parts = append(parts, "wa: "+string(s.WhatsApp))
	}
	return strings.Join(parts, ", ")
}
