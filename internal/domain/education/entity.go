package education

import (
	"time"

	"github.com/google/uuid"
)

// HazardLevel classifies the danger of a component.
type HazardLevel string

const (
	HazardLow      HazardLevel = "low"
	HazardModerate HazardLevel = "moderate"
	HazardHigh     HazardLevel = "high"
	HazardExtreme  HazardLevel = "extreme"
)

// ModuleType classifies a learning module's depth.
type ModuleType string

const (
	ModuleAwareness ModuleType = "awareness"
	ModuleAction    ModuleType = "action"
	ModuleDeepDive  ModuleType = "deep_dive"
)

// HazardousComponent is a tracked material with educational content.
type HazardousComponent struct {
	ID                   uuid.UUID   `db:"id"`
	Name                 string      `db:"name"`
	Slug                 string      `db:"slug"`
	HazardLevel          HazardLevel `db:"hazard_level"`
	Overview             string      `db:"overview"`
	EnvironmentalImpact  string      `db:"environmental_impact"`
	HumanHealthImpact    string      `db:"human_health_impact"`
	SafeHandlingGuidance string      `db:"safe_handling_guidance"`
	LastReviewed         *time.Time  `db:"last_reviewed"`
	CreatedAt            time.Time   `db:"created_at"`
	UpdatedAt            time.Time   `db:"updated_at"`
}

// LearningModule is a curated educational narrative tied to components.
type LearningModule struct {
	ID                uuid.UUID  `db:"id"`
	Title             string     `db:"title"`
	Slug              string     `db:"slug"`
	Summary           string     `db:"summary"`
	Body              string     `db:"body"`
	ModuleType        ModuleType `db:"module_type"`
	EstimatedReadTime int        `db:"estimated_read_time"`
	IsPublished       bool       `db:"is_published"`
	CreatedAt         time.Time  `db:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at"`
}
