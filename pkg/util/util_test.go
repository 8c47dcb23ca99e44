package util

import (
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{name: "day suffix", input: "7d", expected: 7 * 24 * time.Hour},
		{name: "ninety days", input: "90d", expected: 90 * 24 * time.Hour},
		{name: "plain seconds", input: "30", expected: 30 * time.Second},
		{name: "go duration", input: "1h30m", expected: 90 * time.Minute},
		{name: "whitespace trimmed", input: " 2d ", expected: 48 * time.Hour},
		{name: "invalid day count", input: "xd", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDuration(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseDuration(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDuration(%q) failed: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseDuration(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIsValidUsername(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"alice", true},
		{"alice_01", true},
		{"AB_9", true},
		{"ab", false},                 // 太短
		{"alice-smith", false},        // 短横线不允许
		{"alice.smith", false},        // 点号不允许
		{"用户名abc", false},             // 非 ASCII
		{"", false},
		{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", false}, // 33 个字符
	}

	for _, tt := range tests {
		if got := IsValidUsername(tt.input); got != tt.expected {
			t.Errorf("IsValidUsername(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"alice@example.com", true},
		{"a.b+c@sub.example.org", true},
		{"alice@", false},
		{"@example.com", false},
		{"no-at-sign", false},
	}

	for _, tt := range tests {
		if got := IsValidEmail(tt.input); got != tt.expected {
			t.Errorf("IsValidEmail(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := GeneratePasswordHash("s3cret-pass")
	if err != nil {
		t.Fatalf("GeneratePasswordHash failed: %v", err)
	}

	if !CheckPasswordHash(hash, "s3cret-pass") {
		t.Error("Expected password to match its own hash")
	}
	if CheckPasswordHash(hash, "wrong-pass") {
		t.Error("Expected mismatched password to fail")
	}
}
