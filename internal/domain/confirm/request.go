// Package confirm holds the confirmation step of state-changing list actions.
// A Request is either pending or answered with yes/no, and is answered once.
package confirm

import (
	"errors"
	"time"

	"storeadmin/internal/domain"
)

// Status of a request.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAnswered Status = "answered"
)

var (
	ErrNotFound        = errors.New("confirmation not found")
	ErrAlreadyAnswered = errors.New("confirmation already answered")
)

// Request asks the user to confirm an action on one record.
type Request struct {
	ID          string        `json:"id"`
	Entity      domain.Entity `json:"entity"`
	TargetID    int64         `json:"targetId"`
	Action      domain.Action `json:"action"`
	Message     string        `json:"message"`
	RequestedBy string        `json:"requestedBy,omitempty"`
	Status      Status        `json:"status"`
	// Confirmed is only meaningful once Status is answered.
	Confirmed  bool       `json:"confirmed"`
	CreatedAt  time.Time  `json:"createdAt"`
	ExpiresAt  time.Time  `json:"expiresAt"`
	AnsweredAt *time.Time `json:"answeredAt,omitempty"`
}

// IsPending reports whether the request still waits for an answer.
func (r Request) IsPending() bool { return r.Status == StatusPending }

// Outcome returns the answer and whether there is one.
func (r Request) Outcome() (confirmed, answered bool) {
	if r.Status != StatusAnswered {
		return false, false
	}
	return r.Confirmed, true
}

// Answer resolves a pending request.
func (r *Request) Answer(confirmed bool, at time.Time) error {
	if r.Status == StatusAnswered {
		return ErrAlreadyAnswered
	}
	r.Status = StatusAnswered
	r.Confirmed = confirmed
	r.AnsweredAt = &at
	return nil
}

// reopen moves an answered request back to pending.
func (r *Request) reopen() {
	r.Status = StatusPending
	r.Confirmed = false
	r.AnsweredAt = nil
}

func (r Request) expired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}
