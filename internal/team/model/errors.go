package model

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrRegistrationClosed indicates the registration limit has been reached.
	ErrRegistrationClosed = errors.New("registration closed")
	// ErrInvalidTeamName indicates the team name is missing or blank.
	ErrInvalidTeamName = errors.New("team name is required")
	// ErrRosterSize indicates the roster does not have exactly 4 members
	// besides the leader.
	ErrRosterSize = errors.New("team must have exactly 5 participants (1 lead + 4 members)")
	// ErrIncompleteRoster indicates a roster entry is missing a required field.
	ErrIncompleteRoster = errors.New("all roster entries need name, register number, mobile number, gender, year and department")
	// ErrMissingTransactionRef indicates the payment transaction reference is missing.
	ErrMissingTransactionRef = errors.New("payment transaction reference is required")
	// ErrMissingProof indicates no payment proof was uploaded.
	ErrMissingProof = errors.New("payment screenshot is required")
	// ErrTeamNameTaken indicates another team already uses this name
	// (case-insensitive).
	ErrTeamNameTaken = errors.New("team name already exists")
	// ErrTransactionRefTaken indicates another team already submitted this
	// transaction reference.
	ErrTransactionRefTaken = errors.New("transaction reference already exists")
	// ErrTeamNotFound indicates the requested team does not exist.
	ErrTeamNotFound = errors.New("team not found")
	// ErrInvalidDecision indicates a review decision other than Verified or
	// Rejected.
	ErrInvalidDecision = errors.New("decision must be Verified or Rejected")
	// ErrRejectionReasonRequired indicates a Rejected decision without a reason.
	ErrRejectionReasonRequired = errors.New("rejection reason is required")
	// ErrStorageUnavailable indicates the backing store could not be reached.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// IsValidationError reports whether err is a pre-persistence input error.
// Validation failures happen before any allocation or mutation.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidTeamName) ||
		errors.Is(err, ErrRosterSize) ||
		errors.Is(err, ErrIncompleteRoster) ||
		errors.Is(err, ErrMissingTransactionRef) ||
		errors.Is(err, ErrMissingProof) ||
		errors.Is(err, ErrInvalidDecision) ||
		errors.Is(err, ErrRejectionReasonRequired)
}

// IsDuplicateKeyError reports whether err is a unique constraint violation.
// Covers gorm's translated error plus the raw postgres and sqlite messages.
func IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint")
}
