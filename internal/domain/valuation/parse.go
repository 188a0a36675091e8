package valuation

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

type rawEstimate struct {
	Mass       json.Number `json:"estimated_precious_metal_mass_grams"`
	Credit     json.Number `json:"estimated_credit_value"`
	Confidence string      `json:"confidence"`
}

// parseEstimate decodes a model reply into a Result. Each field is validated
// independently: malformed or negative values are dropped, and a reply with
// no usable fields yields nil.
func parseEstimate(text string) *Result {
	cleaned := stripFences(text)

	var raw rawEstimate
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil
	}

	result := &Result{}
	usable := false

	if mass := coerceDecimal(raw.Mass); mass != nil && !mass.IsNegative() {
		result.PreciousMetalMassGrams = mass
		usable = true
	}
	if credit := coerceDecimal(raw.Credit); credit != nil && !credit.IsNegative() {
		result.CreditValue = credit
		usable = true
	}
	if raw.Confidence != "" {
		result.Confidence = raw.Confidence
		usable = true
	}

	if !usable {
		return nil
	}
	return result
}

// stripFences removes markdown code fences that models wrap JSON in.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	lines := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) > 0 && strings.HasPrefix(lines[0], "```") {
		lines = lines[1:]
	}
	if len(lines) > 0 && strings.HasPrefix(lines[len(lines)-1], "```") {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func coerceDecimal(n json.Number) *decimal.Decimal {
	if n == "" {
		return nil
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return nil
	}
	return &d
}
