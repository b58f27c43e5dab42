package logger

import (
	"log/slog"
	"strings"
)

// Key patterns naming contact details.
var sensitiveKeyPatterns = []string{
	"phone",
	"email",
	"address",
	"birthday",
	"instagram",
	"telegram",
	"whatsapp",
	"password",
	"secret",
}

// redactedValue is the placeholder for redacted sensitive data.
const redactedValue = "***REDACTED***"

// redactSensitive masks string attributes whose key names a contact
// detail. Email addresses keep their domain.
func redactSensitive(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindString {
		strVal := a.Value.String()
		if strVal != "" && IsSensitiveKey(a.Key) {
			if IsSensitiveValue(strVal) {
				return slog.String(a.Key, maskEmail(strVal))
			}
			return slog.String(a.Key, redactedValue)
		}
	}

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		newAttrs := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			newAttrs[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(newAttrs...)}
	}

	return a
}

// maskEmail keeps the first character of the local part and the domain.
func maskEmail(value string) string {
	local, domain, ok := strings.Cut(value, "@")
	if !ok || local == "" {
		return redactedValue
	}
	return local[:1] + "***@" + domain
}

// IsSensitiveKey checks if a key name suggests sensitive content.
func IsSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(keyLower, pattern) {
			return true
		}
	}
	return false
}

// IsSensitiveValue checks if a value looks like an email address.
func IsSensitiveValue(value string) bool {
	at := strings.IndexByte(value, '@')
	return at > 0 && at < len(value)-1 && !strings.ContainsAny(value, " \t")
}
