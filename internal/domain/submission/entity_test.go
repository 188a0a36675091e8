package submission

import "testing"

func TestCanBeUpdatedTo(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		{"draft to pending", StatusDraft, StatusPending, true},
		{"draft to cancelled", StatusDraft, StatusCancelled, true},
		{"draft to received", StatusDraft, StatusReceived, false},
		{"draft to credited", StatusDraft, StatusCredited, false},
		{"pending to received", StatusPending, StatusReceived, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"pending to credited", StatusPending, StatusCredited, false},
		{"pending to draft", StatusPending, StatusDraft, false},
		{"received to credited", StatusReceived, StatusCredited, true},
		{"received to cancelled", StatusReceived, StatusCancelled, true},
		{"received to pending", StatusReceived, StatusPending, false},
		{"credited is final", StatusCredited, StatusCancelled, false},
		{"no clawback to pending", StatusCredited, StatusPending, false},
		{"cancelled is final", StatusCancelled, StatusPending, false},
		{"cancelled to credited", StatusCancelled, StatusCredited, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Submission{Status: tt.from}
			if got := s.CanBeUpdatedTo(tt.to); got != tt.want {
				t.Errorf("%s -> %s: expected %v, got %v", tt.from, tt.to, tt.want, got)
			}
		})
	}
}

func TestStatusIsValid(t *testing.T) {
	for _, s := range []Status{StatusDraft, StatusPending, StatusReceived, StatusCredited, StatusCancelled} {
		if !s.IsValid() {
			t.Errorf("expected %s to be valid", s)
		}
	}
	for _, s := range []Status{"", "unknown", "DRAFT"} {
		if s.IsValid() {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		sub  Submission
		want string
	}{
		{"custom name wins", Submission{CustomDeviceName: "Acme Toaster 3000", DeviceType: "Toaster"}, "Acme Toaster 3000"},
		{"falls back to type", Submission{DeviceType: "Toaster"}, "Toaster"},
		{"generic fallback", Submission{}, "Custom device"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sub.DisplayName(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
