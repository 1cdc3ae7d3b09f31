package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-06-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Year() != 2024 || d.Month() != time.June || d.Day() != 15 {
		t.Fatalf("unexpected date: %s", d)
	}

	if _, err := ParseDate("15/06/2024"); err == nil {
		t.Fatal("expected error for non-ISO date")
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, time.January, 1)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2024-01-01"` {
		t.Fatalf("unexpected JSON: %s", b)
	}

	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Fatalf("round trip mismatch: %s != %s", back, d)
	}

	var bad Date
	if err := json.Unmarshal([]byte(`"June 1st"`), &bad); err == nil {
		t.Fatal("expected error for malformed date")
	}
}
