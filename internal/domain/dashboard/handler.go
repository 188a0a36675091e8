package dashboard

import (
	"net/http"

	"github.com/ecoloop/ecoloop-api/internal/domain/education"
	"github.com/ecoloop/ecoloop-api/internal/domain/facility"
	"github.com/ecoloop/ecoloop-api/internal/domain/ledger"
	"github.com/ecoloop/ecoloop-api/internal/domain/reward"
	"github.com/ecoloop/ecoloop-api/internal/domain/submission"
	"github.com/ecoloop/ecoloop-api/internal/middleware"
	"github.com/ecoloop/ecoloop-api/internal/pkg/response"
)

type residentSummaryResponse struct {
	Profile           *ledger.ProfileResponse          `json:"profile"`
	RecentSubmissions []*submission.SubmissionResponse `json:"recent_submissions"`
	NearbyFacilities  []*facility.FacilityResponse     `json:"nearby_facilities"`
	SuggestedModules  []education.ModuleResponse       `json:"suggested_modules"`
	FeaturedRewards   []reward.RewardResponse          `json:"featured_rewards"`
}

type staffSummaryResponse struct {
	SubmissionCounts  map[string]int                   `json:"submission_counts"`
	FacilityCount     int                              `json:"facility_count"`
	PublishedModules  int                              `json:"published_modules"`
	RecentSubmissions []*submission.SubmissionResponse `json:"recent_submissions"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Resident(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	summary, err := h.service.ResidentSummary(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}

	out := residentSummaryResponse{
		Profile:           ledger.ProfileResponseFromEntity(summary.Profile),
		RecentSubmissions: make([]*submission.SubmissionResponse, 0, len(summary.RecentSubmissions)),
		NearbyFacilities:  make([]*facility.FacilityResponse, 0, len(summary.NearbyFacilities)),
		SuggestedModules:  make([]education.ModuleResponse, 0, len(summary.SuggestedModules)),
		FeaturedRewards:   make([]reward.RewardResponse, 0, len(summary.FeaturedRewards)),
	}
	for i := range summary.RecentSubmissions {
		out.RecentSubmissions = append(out.RecentSubmissions, submission.SubmissionResponseFromEntity(&summary.RecentSubmissions[i]))
	}
	for i := range summary.NearbyFacilities {
		out.NearbyFacilities = append(out.NearbyFacilities, facility.FacilityResponseFromEntity(&summary.NearbyFacilities[i]))
	}
	for i := range summary.SuggestedModules {
		out.SuggestedModules = append(out.SuggestedModules, education.NewModuleResponse(&summary.SuggestedModules[i]))
	}
	for i := range summary.FeaturedRewards {
		out.FeaturedRewards = append(out.FeaturedRewards, reward.NewRewardResponse(&summary.FeaturedRewards[i]))
	}

	response.OK(w, out)
}

func (h *Handler) Staff(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.StaffSummary(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}

	counts := make(map[string]int, len(summary.SubmissionCounts))
	for status, n := range summary.SubmissionCounts {
		counts[string(status)] = n
	}

	out := staffSummaryResponse{
		SubmissionCounts:  counts,
		FacilityCount:     summary.FacilityCount,
		PublishedModules:  summary.PublishedModules,
		RecentSubmissions: make([]*submission.SubmissionResponse, 0, len(summary.RecentSubmissions)),
	}
	for i := range summary.RecentSubmissions {
		out.RecentSubmissions = append(out.RecentSubmissions, submission.SubmissionResponseFromEntity(&summary.RecentSubmissions[i]))
	}

	response.OK(w, out)
}
