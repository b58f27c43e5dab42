package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func logEntry(t *testing.T, args ...any) map[string]any {
	t.Helper()

	var buf bytes.Buffer
	l, err := New(Config{Level: "info", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	l.Info("contact logged", args...)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}
	return entry
}

func TestRedactSensitive_ContactFields(t *testing.T) {
	tests := []struct {
		key   string
		value string
		want  string
	}{
		{"phone", "94351253", redactedValue},
		{"address", "123, Jurong West Ave 6", redactedValue},
		{"birthday", "01/01/2000", redactedValue},
		{"whatsapp", "6591234567", redactedValue},
		{"telegram", "alice_tg", redactedValue},
		{"instagram", "alice.y", redactedValue},
		{"email", "alice@example.com", "a***@example.com"},
		{"contact_email", "bob@u.nus.edu", "b***@u.nus.edu"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			entry := logEntry(t, tt.key, tt.value)
			if got := entry[tt.key]; got != tt.want {
				t.Errorf("%s = %v, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestRedactSensitive_NonSensitive(t *testing.T) {
	entry := logEntry(t, "command", "add", "persons", 3)

	if got := entry["command"]; got != "add" {
		t.Errorf("command = %v, want add", got)
	}
	if got := entry["persons"]; got != float64(3) {
		t.Errorf("persons = %v, want 3", got)
	}
}

func TestRedactSensitive_EmptyValue(t *testing.T) {
	entry := logEntry(t, "phone", "")
	if got := entry["phone"]; got != "" {
		t.Errorf("empty phone = %v, want empty", got)
	}
}

func TestRedactSensitive_Group(t *testing.T) {
	entry := logEntry(t, slog.Group("person", slog.String("name", "Alice"), slog.String("phone", "999")))

	group, ok := entry["person"].(map[string]any)
	if !ok {
		t.Fatalf("person group missing: %v", entry)
	}
	if group["name"] != "Alice" {
		t.Errorf("name = %v, want Alice", group["name"])
	}
	if group["phone"] != redactedValue {
		t.Errorf("phone = %v, want %q", group["phone"], redactedValue)
	}
}

func TestIsSensitiveKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"phone", true},
		{"Email", true},
		{"home_address", true},
		{"name", false},
		{"command", false},
	}
	for _, tt := range tests {
		if got := IsSensitiveKey(tt.key); got != tt.want {
			t.Errorf("IsSensitiveKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}
