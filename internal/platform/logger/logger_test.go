package logger

import "testing"

func TestSanitizeValue_RedactsSecrets(t *testing.T) {
	if got := sanitizeValue("openai_api_key", "abc"); got != "[REDACTED]" {
		t.Fatalf("expected redaction, got %v", got)
	}
	if got := sanitizeValue("authorization", "Bearer x"); got != "[REDACTED]" {
		t.Fatalf("expected redaction, got %v", got)
	}
	if got := sanitizeValue("output_tokens", 42); got != 42 {
		t.Fatalf("token counts must pass through, got %v", got)
	}
	if got := sanitizeValue("note", "sk-abcdefghijklmnopqrstuvwxyz"); got != "[REDACTED]" {
		t.Fatalf("expected key-shaped value to be redacted, got %v", got)
	}
}

func TestHashValue_IsStable(t *testing.T) {
	a := hashValue("editor-1")
	b := hashValue("editor-1")
	if a != b || len(a) != len("hash:")+12 {
		t.Fatalf("unexpected hash %q / %q", a, b)
	}
	if hashValue("") != "" {
		t.Fatalf("empty value should hash to empty")
	}
}

func TestParseLevel(t *testing.T) {
	if parseLevel("warn").String() != "warn" {
		t.Fatalf("expected warn")
	}
	if parseLevel("bogus").String() != "debug" {
		t.Fatalf("expected debug fallback")
	}
}
