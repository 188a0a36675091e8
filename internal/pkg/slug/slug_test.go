package slug

import "testing"

func TestMake(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Acme Toaster 3000", "acme-toaster-3000"},
		{"Green Loop Center", "green-loop-center"},
		{"  EcoTech  Pulse X ", "ecotech-pulse-x"},
		{"Léa's Phone", "léa-s-phone"},
		{"---", ""},
		{"", ""},
		{"Smart speaker!", "smart-speaker"},
	}

	for _, tc := range cases {
		if got := Make(tc.in); got != tc.want {
			t.Errorf("Make(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMakeUnique(t *testing.T) {
	taken := map[string]bool{
		"acme-toaster-3000":   true,
		"acme-toaster-3000-1": true,
	}
	exists := func(s string) bool { return taken[s] }

	got := MakeUnique("Acme Toaster 3000", exists)
	if got != "acme-toaster-3000-2" {
		t.Fatalf("expected acme-toaster-3000-2, got %s", got)
	}

	if got := MakeUnique("Fresh Device", exists); got != "fresh-device" {
		t.Fatalf("expected fresh-device, got %s", got)
	}
}

func TestMakeUniqueEmptyBase(t *testing.T) {
	if got := MakeUnique("!!!", func(string) bool { return false }); got != "item" {
		t.Fatalf("expected fallback slug, got %s", got)
	}
}
