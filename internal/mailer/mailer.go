// Package mailer sends transactional email to team leaders.
package mailer

import (
	"context"
	"errors"
)

// ErrDisabled is returned by every send when no mail provider is configured.
var ErrDisabled = errors.New("mailer is not configured")

// Member is one roster line in a confirmation email.
type Member struct {
	Name           string
	RegisterNumber string
}

// Confirmation carries the data for a registration confirmation email.
type Confirmation struct {
	TeamCode    string
	TeamName    string
	LeaderEmail string
	LeaderName  string
	Members     []Member
}

// Decision carries the data for a payment decision email.
type Decision struct {
	TeamCode        string
	TeamName        string
	LeaderEmail     string
	LeaderName      string
	Status          string
	RejectionReason string
}

// Notifier delivers email. Expected delivery failures (auth, network,
// provider rejection) come back as ordinary errors; callers decide whether
// the failure matters and never see a panic.
type Notifier interface {
	SendRegistrationConfirmation(ctx context.Context, c Confirmation) error
	SendPaymentDecision(ctx context.Context, d Decision) error
}

// Disabled is a Notifier whose sends always fail with ErrDisabled.
type Disabled struct{}

// SendRegistrationConfirmation implements Notifier.
func (Disabled) SendRegistrationConfirmation(ctx context.Context, c Confirmation) error {
	return ErrDisabled
}

// SendPaymentDecision implements Notifier.
func (Disabled) SendPaymentDecision(ctx context.Context, d Decision) error {
	return ErrDisabled
}
