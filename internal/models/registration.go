package models

import "time"

// Registration application review states.
const (
	ApplicationPending  = "pending"
	ApplicationApproved = "approved"
	ApplicationRejected = "rejected"
)

// RegistrationApplication is a student sign-up awaiting administrator review.
type RegistrationApplication struct {
	ID          int64      `json:"id"`
	StudentName string     `json:"student_name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Status      string     `json:"status"`
	SubmittedAt time.Time  `json:"submitted_at"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
}

// ApplicationFilter describes query params for listing applications.
type ApplicationFilter struct {
	Status string
	Page   int
	Size   int
}

// ReviewRequest decides a single application.
type ReviewRequest struct {
	Approved bool   `json:"approved"`
	Comment  string `json:"comment"`
}

// BatchReviewRequest decides up to the batch limit of applications at once.
type BatchReviewRequest struct {
	ApplicationIDs []int64 `json:"application_ids" validate:"required,min=1"`
	Approved       bool    `json:"approved"`
	Comment        string  `json:"comment"`
}

// BatchReviewResult summarises a batch review round-trip.
type BatchReviewResult struct {
	Reviewed  int     `json:"reviewed"`
	FailedIDs []int64 `json:"failed_ids,omitempty"`
}
