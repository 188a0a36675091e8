package dashboard

import (
	"context"

	"github.com/google/uuid"

	"github.com/ecoloop/ecoloop-api/internal/domain/education"
	"github.com/ecoloop/ecoloop-api/internal/domain/facility"
	"github.com/ecoloop/ecoloop-api/internal/domain/ledger"
	"github.com/ecoloop/ecoloop-api/internal/domain/reward"
	"github.com/ecoloop/ecoloop-api/internal/domain/submission"
)

// ResidentSummary is the landing view for a signed-in resident.
type ResidentSummary struct {
	Profile           *ledger.UserProfile
	RecentSubmissions []submission.Submission
	NearbyFacilities  []facility.Facility
	SuggestedModules  []education.LearningModule
	FeaturedRewards   []reward.Reward
}

// StaffSummary is the operational overview for facility staff.
type StaffSummary struct {
	SubmissionCounts  map[submission.Status]int
	FacilityCount     int
	PublishedModules  int
	RecentSubmissions []submission.Submission
}

type Service interface {
	ResidentSummary(ctx context.Context, userID uuid.UUID) (*ResidentSummary, error)
	StaffSummary(ctx context.Context) (*StaffSummary, error)
}

type dashboardService struct {
	ledgerSvc     ledger.Service
	submissionSvc submission.Service
	facilitySvc   facility.Service
	educationSvc  education.Service
	rewardSvc     reward.Service
}

func NewService(
	ledgerSvc ledger.Service,
	submissionSvc submission.Service,
	facilitySvc facility.Service,
	educationSvc education.Service,
	rewardSvc reward.Service,
) Service {
	return &dashboardService{
		ledgerSvc:     ledgerSvc,
		submissionSvc: submissionSvc,
		facilitySvc:   facilitySvc,
		educationSvc:  educationSvc,
		rewardSvc:     rewardSvc,
	}
}

func (s *dashboardService) ResidentSummary(ctx context.Context, userID uuid.UUID) (*ResidentSummary, error) {
	profile, err := s.ledgerSvc.EnsureProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	submissions, err := s.submissionSvc.ListByUser(ctx, userID, 5, 0)
	if err != nil {
		return nil, err
	}

	// The teaser sections are decorative; a failure in any of them should
	// not blank the whole dashboard.
	facilities, err := s.facilitySvc.List(ctx, facility.ListFilter{Limit: 3})
	if err != nil {
		facilities = nil
	}
	modules, err := s.educationSvc.ListModules(ctx, "", 3, 0)
	if err != nil {
		modules = nil
	}
	rewards, err := s.rewardSvc.ListActive(ctx, 3, 0)
	if err != nil {
		rewards = nil
	}

	return &ResidentSummary{
		Profile:           profile,
		RecentSubmissions: submissions,
		NearbyFacilities:  facilities,
		SuggestedModules:  modules,
		FeaturedRewards:   rewards,
	}, nil
}

func (s *dashboardService) StaffSummary(ctx context.Context) (*StaffSummary, error) {
	counts, err := s.submissionSvc.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	facilityCount, err := s.facilitySvc.Count(ctx)
	if err != nil {
		return nil, err
	}

	moduleCount, err := s.educationSvc.CountModules(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.submissionSvc.ListAll(ctx, "", 6, 0)
	if err != nil {
		return nil, err
	}

	return &StaffSummary{
		SubmissionCounts:  counts,
		FacilityCount:     facilityCount,
		PublishedModules:  moduleCount,
		RecentSubmissions: recent,
	}, nil
}
