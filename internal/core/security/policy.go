// Package security holds posting-period policies for statutory documents.
package security

import (
	"context"
	"time"

	"pharmabill/internal/core/apperror"
)

// PostingPolicy defines rules for document posting.
// A filed GST period must stay immutable, so posting into a closed
// period is refused regardless of user role.
type PostingPolicy interface {
	// CanPost checks if a document can be posted with given date
	CanPost(ctx context.Context, docDate time.Time) error

	// CanModify checks if a posted document can be modified
	CanModify(ctx context.Context, docDate time.Time) error

	// CanUnpost checks if a document can be unposted
	CanUnpost(ctx context.Context, docDate time.Time) error
}

// StrictPolicy forbids any changes to a closed period.
// Used once a GSTR filing for the period has been submitted.
type StrictPolicy struct {
	closedUntil time.Time
}

// NewStrictPolicy creates policy that forbids changes before closedUntil.
func NewStrictPolicy(closedUntil time.Time) *StrictPolicy {
	return &StrictPolicy{closedUntil: closedUntil}
}

func (p *StrictPolicy) CanPost(ctx context.Context, docDate time.Time) error {
	if docDate.Before(p.closedUntil) {
		return apperror.NewPeriodClosed(p.closedUntil.Format("2006-01"))
	}
	return nil
}

func (p *StrictPolicy) CanModify(ctx context.Context, docDate time.Time) error {
	return p.CanPost(ctx, docDate)
}

func (p *StrictPolicy) CanUnpost(ctx context.Context, docDate time.Time) error {
	return p.CanPost(ctx, docDate)
}

// OpenPolicy allows all operations (for development and tests).
type OpenPolicy struct{}

func (OpenPolicy) CanPost(ctx context.Context, docDate time.Time) error   { return nil }
func (OpenPolicy) CanModify(ctx context.Context, docDate time.Time) error { return nil }
func (OpenPolicy) CanUnpost(ctx context.Context, docDate time.Time) error { return nil }
