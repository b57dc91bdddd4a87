package gs1

import (
	"strings"
	"testing"
)

func TestCheckDigit(t *testing.T) {
	testCases := []struct {
		digits string
		want   int
	}{
		{"1899495700000042", 2},
		{"18994957000000042", 0},
		{"1899495", 7},
		{"0", 0},
		{"7", 9},
	}

	for _, tc := range testCases {
		if got := CheckDigit(tc.digits); got != tc.want {
			t.Errorf("CheckDigit(%q) = %d, want %d", tc.digits, got, tc.want)
		}
	}
}

// checkDigitReference recomputes the weighted sum independently so the
// generator tests do not share the implementation under test.
func checkDigitReference(digits string) int {
	total := 0
	for i := 0; i < len(digits); i++ {
		d := int(digits[len(digits)-1-i] - '0')
		if i%2 == 0 {
			total += d * 3
		} else {
			total += d
		}
	}
	return (10 - (total % 10)) % 10
}

func TestContainerID(t *testing.T) {
	id42 := ContainerID(42)
	id43 := ContainerID(43)

	if len(id42) != 18 {
		t.Fatalf("expected 18 digits, got %d (%q)", len(id42), id42)
	}
	if id42 == id43 {
		t.Fatal("distinct row keys must produce distinct container ids")
	}
	if id42[:9] != id43[:9] {
		t.Errorf("ids for consecutive keys should share the fixed header: %q vs %q", id42, id43)
	}

	for _, id := range []string{id42, id43, ContainerID(1), ContainerID(99999999)} {
		if !strings.HasPrefix(id, ExtensionDigit+CompanyPrefix) {
			t.Errorf("id %q missing extension digit and company prefix", id)
		}
		want := checkDigitReference(id[:17])
		if got := int(id[17] - '0'); got != want {
			t.Errorf("id %q has check digit %d, want %d", id, got, want)
		}
	}

	t.Run("serial_stays_nine_digits_for_large_keys", func(t *testing.T) {
		for _, key := range []uint{999999999, 1000000000, 1234567890} {
			id := ContainerID(key)
			if len(id) != 18 {
				t.Errorf("ContainerID(%d) has %d digits (%q), want 18", key, len(id), id)
			}
		}
		if ContainerID(1000000007) != ContainerID(7) {
			t.Error("keys past the serial capacity should wrap onto the nine-digit range")
		}
	})

	if id42 != "189949570000000420" {
		t.Errorf("ContainerID(42) = %q, want 189949570000000420", id42)
	}
	if id43 != "189949570000000437" {
		t.Errorf("ContainerID(43) = %q, want 189949570000000437", id43)
	}
}

func TestItemID(t *testing.T) {
	id := ItemID()
	if len(id) != 8 {
		t.Fatalf("expected 8 digits, got %d (%q)", len(id), id)
	}
	want := checkDigitReference(id[:7])
	if got := int(id[7] - '0'); got != want {
		t.Errorf("item id %q has check digit %d, want %d", id, got, want)
	}
	if id != ItemID() {
		t.Error("item id must be deterministic")
	}
}
