package model

import "time"

// RosterEntry is one person in a registration request or response.
type RosterEntry struct {
	Name           string `json:"name"`
	RegisterNumber string `json:"register_number"`
	MobileNumber   string `json:"mobile_number"`
	Email          string `json:"email,omitempty"`
	Gender         string `json:"gender"`
	YearOfStudy    string `json:"year_of_study"`
	Department     string `json:"department"`
	IsHosteler     bool   `json:"is_hosteler"`
	HostelName     string `json:"hostel_name,omitempty"`
	RoomNumber     string `json:"room_number,omitempty"`
}

// RegisterRequest carries a parsed registration submission. ProofAssetRef is
// the provisional location the uploaded screenshot was stored at.
type RegisterRequest struct {
	TeamName       string        `json:"team_name"`
	Leader         RosterEntry   `json:"leader"`
	Members        []RosterEntry `json:"members"`
	TransactionRef string        `json:"transaction_ref"`
	ProofAssetRef  string        `json:"-"`
}

// RegistrationResponse is returned once the team record is committed.
type RegistrationResponse struct {
	TeamCode string `json:"team_code"`
}

// PaymentInfo is the payment block of a team response.
type PaymentInfo struct {
	Amount             int        `json:"amount"`
	TransactionRef     string     `json:"transaction_ref"`
	ProofAssetRef      string     `json:"proof_asset_ref"`
	Status             string     `json:"status"`
	RejectionReason    string     `json:"rejection_reason,omitempty"`
	NotificationSent   bool       `json:"notification_sent"`
	NotificationSentAt *time.Time `json:"notification_sent_at,omitempty"`
}

// TeamResponse is the full representation of a team.
type TeamResponse struct {
	TeamCode      string        `json:"team_code"`
	TeamName      string        `json:"team_name"`
	Leader        RosterEntry   `json:"leader"`
	Members       []RosterEntry `json:"members"`
	Payment       PaymentInfo   `json:"payment"`
	AdminOverride bool          `json:"admin_override"`
	CreatedAt     time.Time     `json:"created_at"`
}

// StatsResponse reports the capacity gate state. VerifiedCount counts teams
// whose payment has been verified; pending submissions do not consume
// capacity.
type StatsResponse struct {
	VerifiedCount int64 `json:"verified_count"`
	Limit         int64 `json:"limit"`
	Open          bool  `json:"open"`
}

// StatusResponse is the public payment status lookup result.
type StatusResponse struct {
	Status          string `json:"status"`
	RejectionReason string `json:"reason,omitempty"`
}

// ReviewRequest carries an administrator payment decision.
type ReviewRequest struct {
	TeamCode        string `json:"team_code" binding:"required"`
	Decision        string `json:"decision" binding:"required"`
	RejectionReason string `json:"rejection_reason"`
}

// ReviewResponse reports the committed state transition together with the
// outcome of the synchronous notification attempt. A failed email never
// rolls back the decision.
type ReviewResponse struct {
	Team      TeamResponse `json:"team"`
	EmailSent bool         `json:"email_sent"`
}

// ExportFilter narrows export rows; empty or "All" values match everything.
type ExportFilter struct {
	Gender        string `json:"gender"`
	Accommodation string `json:"accommodation"`
	Year          string `json:"year"`
	Status        string `json:"status"`
}

// ExportRequest selects teams, filters and columns for a CSV export.
type ExportRequest struct {
	TeamCodes []string     `json:"team_codes"`
	Filter    ExportFilter `json:"filter"`
	Columns   []string     `json:"columns"`
}

// ToRosterEntry converts a stored participant to its DTO form.
func ToRosterEntry(p Participant) RosterEntry {
	return RosterEntry{
		Name:           p.Name,
		RegisterNumber: p.RegisterNumber,
		MobileNumber:   p.MobileNumber,
		Email:          p.Email,
		Gender:         p.Gender,
		YearOfStudy:    p.YearOfStudy,
		Department:     p.Department,
		IsHosteler:     p.IsHosteler,
		HostelName:     p.HostelName,
		RoomNumber:     p.RoomNumber,
	}
}

// ToTeamResponse converts a stored team with its roster to the response DTO.
func ToTeamResponse(t *Team) TeamResponse {
	resp := TeamResponse{
		TeamCode: t.TeamCode,
		TeamName: t.TeamName,
		Payment: PaymentInfo{
			Amount:             t.PaymentAmount,
			TransactionRef:     t.TransactionRef,
			ProofAssetRef:      t.ProofAssetRef,
			Status:             string(t.PaymentStatus),
			RejectionReason:    t.RejectionReason,
			NotificationSent:   t.NotificationSent,
			NotificationSentAt: t.NotificationSentAt,
		},
		AdminOverride: t.AdminOverride,
		CreatedAt:     t.CreatedAt,
	}
	if leader := t.Leader(); leader != nil {
		resp.Leader = ToRosterEntry(*leader)
	}
	members := t.Members()
	resp.Members = make([]RosterEntry, 0, len(members))
	for _, m := range members {
		resp.Members = append(resp.Members, ToRosterEntry(m))
	}
	return resp
}
