// Package model provides domain models and DTOs for the team module.
package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// PaymentStatus is the review state of a team's payment.
type PaymentStatus string

// Payment review states. Pending is the initial state; Verified and Rejected
// are set by administrators and may be corrected by a later re-review.
const (
	StatusPending  PaymentStatus = "Pending"
	StatusVerified PaymentStatus = "Verified"
	StatusRejected PaymentStatus = "Rejected"
)

// Valid reports whether s is a known payment status.
func (s PaymentStatus) Valid() bool {
	return s == StatusPending || s == StatusVerified || s == StatusRejected
}

// Team represents a registered team.
// Matches the teams table schema.
type Team struct {
	TeamCode           string        `gorm:"primaryKey;column:team_code;type:varchar(32)"                                     json:"team_code"`
	TeamName           string        `gorm:"column:team_name;type:varchar(255);not null"                                      json:"team_name"`
	TeamNameNormalized string        `gorm:"column:team_name_normalized;type:varchar(255);not null;uniqueIndex:teams_team_name_normalized_key" json:"-"`
	PaymentAmount      int           `gorm:"column:payment_amount;not null"                                                   json:"payment_amount"`
	TransactionRef     string        `gorm:"column:transaction_ref;type:varchar(64);not null;uniqueIndex:teams_transaction_ref_key" json:"transaction_ref"`
	ProofAssetRef      string        `gorm:"column:proof_asset_ref;type:text;not null"                                        json:"proof_asset_ref"`
	PaymentStatus      PaymentStatus `gorm:"column:payment_status;type:varchar(16);not null;default:'Pending';index:teams_payment_status_idx" json:"payment_status"`
	RejectionReason    string        `gorm:"column:rejection_reason;type:text;not null;default:''"                            json:"rejection_reason"`
	NotificationSent   bool          `gorm:"column:notification_sent;not null;default:false"                                  json:"notification_sent"`
	NotificationSentAt *time.Time    `gorm:"column:notification_sent_at"                                                      json:"notification_sent_at,omitempty"`
	AdminOverride      bool          `gorm:"column:admin_override;not null;default:false"                                     json:"admin_override"`
	CreatedAt          time.Time     `gorm:"column:created_at;not null"                                                       json:"created_at"`
	UpdatedAt          time.Time     `gorm:"column:updated_at;not null"                                                       json:"updated_at"`

	Participants []Participant `gorm:"foreignKey:TeamCode;references:TeamCode" json:"participants,omitempty"`
}

// TableName specifies the table name for GORM.
func (Team) TableName() string {
	return "teams"
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (t *Team) BeforeUpdate(tx *gorm.DB) error {
	t.UpdatedAt = time.Now()
	return nil
}

// Leader returns the roster entry at position 0, or nil if the roster has not
// been loaded.
func (t *Team) Leader() *Participant {
	for i := range t.Participants {
		if t.Participants[i].Position == 0 {
			return &t.Participants[i]
		}
	}
	return nil
}

// Members returns the non-leader roster entries in position order.
func (t *Team) Members() []Participant {
	members := make([]Participant, 0, len(t.Participants))
	for pos := 1; pos < len(t.Participants)+1; pos++ {
		for i := range t.Participants {
			if t.Participants[i].Position == pos {
				members = append(members, t.Participants[i])
			}
		}
	}
	return members
}

// NormalizeTeamName lowercases and trims a team name. The normalized form
// carries the unique index, making name uniqueness case-insensitive.
func NormalizeTeamName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
