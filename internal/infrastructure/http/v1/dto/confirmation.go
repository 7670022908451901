package dto

import (
	"time"

	"storeadmin/internal/domain/confirm"
)

// ConfirmRequest answers a pending confirmation.
type ConfirmRequest struct {
	Confirmed *bool `json:"confirmed" binding:"required"`
}

// ConfirmationResponse describes a confirmation. Confirmed is null while
// the request is pending.
type ConfirmationResponse struct {
	ID         string     `json:"id"`
	Entity     string     `json:"entity"`
	TargetID   int64      `json:"targetId"`
	Action     string     `json:"action"`
	Message    string     `json:"message"`
	Status     string     `json:"status"`
	Confirmed  *bool      `json:"confirmed"`
	CreatedAt  time.Time  `json:"createdAt"`
	ExpiresAt  time.Time  `json:"expiresAt"`
	AnsweredAt *time.Time `json:"answeredAt,omitempty"`
}

// FromConfirmation maps a confirmation request.
func FromConfirmation(r confirm.Request) ConfirmationResponse {
	resp := ConfirmationResponse{
		ID:         r.ID,
		Entity:     string(r.Entity),
		TargetID:   r.TargetID,
		Action:     string(r.Action),
		Message:    r.Message,
		Status:     string(r.Status),
		CreatedAt:  r.CreatedAt,
		ExpiresAt:  r.ExpiresAt,
		AnsweredAt: r.AnsweredAt,
	}
	if confirmed, answered := r.Outcome(); answered {
		resp.Confirmed = &confirmed
	}
	return resp
}
