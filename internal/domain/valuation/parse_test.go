package valuation

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseEstimate(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantNil    bool
		wantMass   string
		wantCredit string
		wantConf   string
	}{
		{
			name:       "plain json",
			input:      `{"estimated_precious_metal_mass_grams": 1.5, "estimated_credit_value": 42, "confidence": "high"}`,
			wantMass:   "1.5",
			wantCredit: "42",
			wantConf:   "high",
		},
		{
			name: "fenced json",
			input: "```json\n" +
				`{"estimated_precious_metal_mass_grams": 0.25, "estimated_credit_value": 10.5, "confidence": "medium"}` +
				"\n```",
			wantMass:   "0.25",
			wantCredit: "10.5",
			wantConf:   "medium",
		},
		{
			name:     "negative credit dropped, mass kept",
			input:    `{"estimated_precious_metal_mass_grams": 2, "estimated_credit_value": -5}`,
			wantMass: "2",
		},
		{
			name:     "confidence only",
			input:    `{"confidence": "low"}`,
			wantConf: "low",
		},
		{
			name:    "not json",
			input:   "I think this device is worth about 40 credits.",
			wantNil: true,
		},
		{
			name:    "empty object",
			input:   `{}`,
			wantNil: true,
		},
		{
			name:    "all fields invalid",
			input:   `{"estimated_precious_metal_mass_grams": -1, "estimated_credit_value": -2}`,
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseEstimate(tt.input)

			if tt.wantNil {
				if got != nil {
					t.Fatalf("expected nil result, got %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatal("expected a result, got nil")
			}

			checkDecimal(t, "mass", got.PreciousMetalMassGrams, tt.wantMass)
			checkDecimal(t, "credit", got.CreditValue, tt.wantCredit)
			if got.Confidence != tt.wantConf {
				t.Errorf("confidence: expected %q, got %q", tt.wantConf, got.Confidence)
			}
		})
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no fences", `{"a":1}`, `{"a":1}`},
		{"plain fences", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"language tag", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  \n```json\n{\"a\":1}\n```\n  ", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripFences(tt.input); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func checkDecimal(t *testing.T, field string, got *decimal.Decimal, want string) {
	t.Helper()
	if want == "" {
		if got != nil {
			t.Errorf("%s: expected nil, got %s", field, got)
		}
		return
	}
	if got == nil {
		t.Errorf("%s: expected %s, got nil", field, want)
		return
	}
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("%s: expected %s, got %s", field, want, got)
	}
}
