package domain

import "testing"

func TestInRange_InclusiveBoundaries(t *testing.T) {
	cases := []struct {
		slotTime string
		window   string
		want     bool
	}{
		{"16:00", "16:00-18:00", true}, // start boundary
		{"18:00", "16:00-18:00", true}, // end boundary
		{"17:00", "16:00-18:00", true},
		{"15:59", "16:00-18:00", false},
		{"18:01", "16:00-18:00", false},
		{"09:30", "09:30-09:30", true}, // degenerate window matches itself
	}
	for _, c := range cases {
		if got := InRange(c.slotTime, c.window); got != c.want {
			t.Errorf("InRange(%q, %q) = %v, want %v", c.slotTime, c.window, got, c.want)
		}
	}
}

func TestInRange_SlotSubRangeUsesFirstComponent(t *testing.T) {
	if !InRange("16:00-17:00", "15:00-16:30") {
		t.Fatal("expected 16:00 (start of sub-range) to fall inside 15:00-16:30")
	}
	if InRange("16:00-17:00", "16:30-18:00") {
		t.Fatal("sub-range end must not be considered; 16:00 is outside 16:30-18:00")
	}
}

func TestInRange_MalformedInputIsFalse(t *testing.T) {
	cases := []struct {
		slotTime string
		window   string
	}{
		{"", "16:00-18:00"},
		{"sixteen", "16:00-18:00"},
		{"25:00", "16:00-18:00"},
		{"16:60", "16:00-18:00"},
		{"16:00", ""},
		{"16:00", "16:00"},
		{"16:00", "16:00-"},
		{"16:00", "aa:bb-cc:dd"},
		{"16", "16:00-18:00"},
	}
	for _, c := range cases {
		if InRange(c.slotTime, c.window) {
			t.Errorf("InRange(%q, %q) = true, want false", c.slotTime, c.window)
		}
	}
}

func TestParseTimeRange(t *testing.T) {
	start, end, err := ParseTimeRange("16:00-18:30")
	if err != nil {
		t.Fatalf("ParseTimeRange: %v", err)
	}
	if start != 16*60 || end != 18*60+30 {
		t.Fatalf("got (%d, %d), want (960, 1110)", start, end)
	}

	if _, _, err := ParseTimeRange("18:00-16:00"); err == nil {
		t.Fatal("expected error for reversed range")
	}
	if _, _, err := ParseTimeRange("16:00"); err == nil {
		t.Fatal("expected error for missing dash")
	}
}
