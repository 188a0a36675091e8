package valuation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// DefaultModelName is the Gemini model used when none is configured.
const DefaultModelName = "gemini-2.5-flash"

// GeminiEstimator appraises devices through the Gemini API. Construction and
// every call are best-effort: an unconfigured key, SDK failure, or unparsable
// reply yields a nil result, never an error surfaced to the caller.
type GeminiEstimator struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	timeout time.Duration
}

// NewGeminiEstimator creates a Gemini-backed estimator. Returns nil (not an
// error) when the API key is unset so callers can wire it unconditionally.
func NewGeminiEstimator(ctx context.Context, apiKey, modelName string, timeout time.Duration) (*GeminiEstimator, error) {
	if apiKey == "" {
		log.Info().Msg("gemini estimator disabled: no API key configured")
		return nil, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	if modelName == "" {
		modelName = DefaultModelName
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &GeminiEstimator{
		client:  client,
		model:   client.GenerativeModel(modelName),
		timeout: timeout,
	}, nil
}

// Close closes the underlying client connection
func (e *GeminiEstimator) Close() {
	if e != nil && e.client != nil {
		e.client.Close()
	}
}

// Estimate asks Gemini to appraise the device. A nil estimator (unconfigured)
// and every failure mode return (nil, nil).
func (e *GeminiEstimator) Estimate(ctx context.Context, req Request) (*Result, error) {
	if e == nil || e.model == nil {
		return nil, nil
	}

	ctx2, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.model.GenerateContent(ctx2, genai.Text(buildPrompt(req)))
	if err != nil {
		log.Warn().Err(err).Msg("gemini request failed")
		return nil, nil
	}

	text := extractText(resp)
	if text == "" {
		log.Debug().Msg("gemini response missing text payload")
		return nil, nil
	}

	result := parseEstimate(text)
	if result == nil {
		log.Debug().Msg("gemini response carried no usable fields")
	}
	return result, nil
}

func buildPrompt(req Request) string {
	deviceName := orDefault(req.DeviceName, "Unknown device")
	category := orDefault(req.DeviceCategory, "Unknown category")
	facility := orDefault(req.FacilityName, "Unknown facility")

	userMass := "Not provided"
	if req.UserEstimatedMass != nil {
		userMass = req.UserEstimatedMass.String()
	}

	var components strings.Builder
	for _, c := range req.Components {
		components.WriteString("- " + c + "\n")
	}
	componentList := strings.TrimRight(components.String(), "\n")
	if componentList == "" {
		componentList = "- None provided"
	}

	return fmt.Sprintf(`You are an e-waste recovery analyst. Estimate the potential precious metal mass and recycling credits for a device drop-off.

Device name: %s
Device category: %s
Facility: %s
User supplied estimated precious metal mass (grams): %s
Relevant hazardous components:
%s
Additional user notes: %s

Respond strictly as compact JSON with the following keys:
  "estimated_precious_metal_mass_grams" (number, >= 0)
  "estimated_credit_value" (number, >= 0)
  "confidence" (string label such as "low", "medium", "high")
Include no explanatory text outside the JSON.`,
		deviceName, category, facility, userMass, componentList, orDefault(req.UserNotes, "None"))
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				sb.WriteString(string(txt))
			}
		}
		if sb.Len() > 0 {
			break
		}
	}
	return strings.TrimSpace(sb.String())
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
