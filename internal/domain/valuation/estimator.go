package valuation

import (
	"context"

	"github.com/shopspring/decimal"
)

// Request describes a device drop-off to appraise.
type Request struct {
	DeviceName        string
	DeviceCategory    string
	FacilityName      string
	UserEstimatedMass *decimal.Decimal
	Components        []string
	UserNotes         string
	PickupAddress     string
}

// Result is a best-effort appraisal. Fields are nil when the estimator could
// not produce them; callers keep their baseline values in that case.
type Result struct {
	PreciousMetalMassGrams *decimal.Decimal
	CreditValue            *decimal.Decimal
	Confidence             string
}

// Estimator appraises the recoverable value of a device. Implementations are
// best-effort: a (nil, nil) return means "no estimate available" and is not
// an error. Callers must never fail their own operation on a nil result.
type Estimator interface {
	Estimate(ctx context.Context, req Request) (*Result, error)
}
