package reward

import "time"

type RewardResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Slug           string `json:"slug"`
	Summary        string `json:"summary"`
	Description    string `json:"description,omitempty"`
	PointsRequired string `json:"points_required"`
	ImageURL       string `json:"image_url,omitempty"`
	PartnerURL     string `json:"partner_url,omitempty"`
}

type RedemptionResponse struct {
	ID               string    `json:"id"`
	RewardID         string    `json:"reward_id"`
	Status           string    `json:"status"`
	PointsSpent      string    `json:"points_spent"`
	RequestedAt      time.Time `json:"requested_at"`
	FulfillmentNotes string    `json:"fulfillment_notes,omitempty"`
}

type UpdateRedemptionStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending fulfilled cancelled"`
	Notes  string `json:"notes" validate:"omitempty,max=500"`
}

func NewRewardResponse(r *Reward) RewardResponse {
	return RewardResponse{
		ID:             r.ID.String(),
		Name:           r.Name,
		Slug:           r.Slug,
		Summary:        r.Summary,
		Description:    r.Description,
		PointsRequired: r.PointsRequired.StringFixed(2),
		ImageURL:       r.ImageURL,
		PartnerURL:     r.PartnerURL,
	}
}

func NewRedemptionResponse(r *RewardRedemption) RedemptionResponse {
	return RedemptionResponse{
		ID:               r.ID.String(),
		RewardID:         r.RewardID.String(),
		Status:           string(r.Status),
		PointsSpent:      r.PointsSpent.StringFixed(2),
		RequestedAt:      r.RequestedAt,
		FulfillmentNotes: r.FulfillmentNotes,
	}
}
