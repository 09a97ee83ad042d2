package months

import "testing"

func TestRotate(t *testing.T) {
	tests := []struct {
		name  string
		start int
		first string
		last  string
	}{
		{"January is identity", 1, "January", "December"},
		{"Mid-year start", 7, "July", "June"},
		{"December start", 12, "December", "November"},
		{"Wraps above twelve", 13, "January", "December"},
		{"Zero wraps backwards", 0, "December", "November"},
		{"Negative wraps backwards", -5, "July", "June"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rotate(tt.start)
			if len(got) != 12 {
				t.Fatalf("Rotate(%d) returned %d months, expected 12", tt.start, len(got))
			}
			if got[0] != tt.first {
				t.Errorf("Rotate(%d)[0] = %s, expected %s", tt.start, got[0], tt.first)
			}
			if got[11] != tt.last {
				t.Errorf("Rotate(%d)[11] = %s, expected %s", tt.start, got[11], tt.last)
			}
		})
	}
}

func TestRotateIsPermutation(t *testing.T) {
	for start := 1; start <= 12; start++ {
		seen := make(map[string]bool)
		for _, m := range Rotate(start) {
			if seen[m] {
				t.Errorf("Rotate(%d) repeats month %s", start, m)
			}
			seen[m] = true
			if _, ok := Index(m); !ok {
				t.Errorf("Rotate(%d) produced unknown month %s", start, m)
			}
		}
		if len(seen) != 12 {
			t.Errorf("Rotate(%d) produced %d distinct months, expected 12", start, len(seen))
		}
	}
}

func TestRotateComposition(t *testing.T) {
	// Rotating a rotation by k2 positions matches a single rotation by the
	// mod-added offset.
	for k1 := 1; k1 <= 12; k1++ {
		for k2 := 1; k2 <= 12; k2++ {
			first := Rotate(k1)
			shift := k2 - 1
			composed := append(append([]string{}, first[shift:]...), first[:shift]...)

			single := Rotate(((k1-1)+(k2-1))%12 + 1)
			for i := range single {
				if composed[i] != single[i] {
					t.Fatalf("composition of rotate(%d) then %d positions diverges at %d: %s != %s",
						k1, k2, i, composed[i], single[i])
				}
			}
		}
	}
}

func TestIndex(t *testing.T) {
	tests := []struct {
		name     string
		month    string
		expected int
		ok       bool
	}{
		{"January", "January", 1, true},
		{"December", "December", 12, true},
		{"Unknown month", "Janvier", 0, false},
		{"Empty string", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, ok := Index(tt.month)
			if ok != tt.ok {
				t.Fatalf("Index(%q) ok = %v, expected %v", tt.month, ok, tt.ok)
			}
			if ok && idx != tt.expected {
				t.Errorf("Index(%q) = %d, expected %d", tt.month, idx, tt.expected)
			}
		})
	}
}

func TestStartMonth(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		expected int
	}{
		{"Valid July date", "2026-07-15", 7},
		{"Valid January date", "2026-01-01", 1},
		{"Malformed date falls back to January", "mid-2026", 1},
		{"Empty date falls back to January", "", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StartMonth(tt.date); got != tt.expected {
				t.Errorf("StartMonth(%q) = %d, expected %d", tt.date, got, tt.expected)
			}
		})
	}
}
