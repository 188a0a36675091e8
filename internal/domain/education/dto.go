package education

import "time"

type ComponentResponse struct {
	ID                   string     `json:"id"`
	Name                 string     `json:"name"`
	Slug                 string     `json:"slug"`
	HazardLevel          string     `json:"hazard_level"`
	Overview             string     `json:"overview"`
	EnvironmentalImpact  string     `json:"environmental_impact"`
	HumanHealthImpact    string     `json:"human_health_impact"`
	SafeHandlingGuidance string     `json:"safe_handling_guidance"`
	LastReviewed         *time.Time `json:"last_reviewed,omitempty"`
}

type ModuleResponse struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Slug              string    `json:"slug"`
	Summary           string    `json:"summary"`
	ModuleType        string    `json:"module_type"`
	EstimatedReadTime int       `json:"estimated_read_time"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type ModuleDetailResponse struct {
	ModuleResponse
	Body       string              `json:"body"`
	Components []ComponentResponse `json:"components"`
}

func NewComponentResponse(c *HazardousComponent) ComponentResponse {
	return ComponentResponse{
		ID:                   c.ID.String(),
		Name:                 c.Name,
		Slug:                 c.Slug,
		HazardLevel:          string(c.HazardLevel),
		Overview:             c.Overview,
		EnvironmentalImpact:  c.EnvironmentalImpact,
		HumanHealthImpact:    c.HumanHealthImpact,
		SafeHandlingGuidance: c.SafeHandlingGuidance,
		LastReviewed:         c.LastReviewed,
	}
}

func NewModuleResponse(m *LearningModule) ModuleResponse {
	return ModuleResponse{
		ID:                m.ID.String(),
		Title:             m.Title,
		Slug:              m.Slug,
		Summary:           m.Summary,
		ModuleType:        string(m.ModuleType),
		EstimatedReadTime: m.EstimatedReadTime,
		UpdatedAt:         m.UpdatedAt,
	}
}
