// Package export renders teams as CSV for organizer spreadsheets.
//
// Output is one row per participant. Filters match participants, not teams:
// a gender filter keeps only the matching roster rows, while status filters
// apply to the whole team.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/createx/registration/internal/team/model"
)

// Options selects filters and columns for a CSV export. A nil or empty
// Columns slice exports every known column in default order.
type Options struct {
	Filter  model.ExportFilter
	Columns []string
}

// Column keys accepted in Options.Columns, in default export order.
var defaultColumns = []string{
	"team_code",
	"team_name",
	"role",
	"name",
	"register_number",
	"mobile_number",
	"email",
	"gender",
	"year_of_study",
	"department",
	"accommodation",
	"hostel_name",
	"room_number",
	"payment_status",
	"transaction_ref",
	"proof_asset_ref",
}

var columnLabels = map[string]string{
	"team_code":       "Team Code",
	"team_name":       "Team Name",
	"role":            "Role",
	"name":            "Name",
	"register_number": "Register Number",
	"mobile_number":   "Mobile Number",
	"email":           "Email",
	"gender":          "Gender",
	"year_of_study":   "Year of Study",
	"department":      "Department",
	"accommodation":   "Accommodation",
	"hostel_name":     "Hostel Name",
	"room_number":     "Room Number",
	"payment_status":  "Payment Status",
	"transaction_ref": "Transaction Ref",
	"proof_asset_ref": "Payment Proof",
}

// WriteCSV writes the selected teams to w. Unknown column keys are an error,
// so a misspelled column fails loudly instead of silently exporting blanks.
func WriteCSV(w io.Writer, teams []model.Team, opts Options) error {
	columns := opts.Columns
	if len(columns) == 0 {
		columns = defaultColumns
	}

	header := make([]string, 0, len(columns))
	for _, col := range columns {
		label, ok := columnLabels[col]
		if !ok {
			return fmt.Errorf("unknown export column %q", col)
		}
		header = append(header, label)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}

	for i := range teams {
		team := &teams[i]
		if !matchesTeam(team, opts.Filter) {
			continue
		}
		memberIdx := 0
		for _, p := range team.Participants {
			if p.Role == model.RoleMember {
				memberIdx++
			}
			if !matchesParticipant(p, opts.Filter) {
				continue
			}
			row := make([]string, 0, len(columns))
			for _, col := range columns {
				row = append(row, cellValue(team, p, memberIdx, col))
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// wildcard reports whether a filter value matches everything.
func wildcard(v string) bool {
	return v == "" || strings.EqualFold(v, "All")
}

func matchesTeam(t *model.Team, f model.ExportFilter) bool {
	return wildcard(f.Status) || strings.EqualFold(string(t.PaymentStatus), f.Status)
}

func matchesParticipant(p model.Participant, f model.ExportFilter) bool {
	if !wildcard(f.Gender) && !strings.EqualFold(p.Gender, f.Gender) {
		return false
	}
	if !wildcard(f.Year) && !strings.EqualFold(p.YearOfStudy, f.Year) {
		return false
	}
	if !wildcard(f.Accommodation) {
		want := strings.EqualFold(f.Accommodation, "Hosteler")
		if p.IsHosteler != want {
			return false
		}
	}
	return true
}

func cellValue(t *model.Team, p model.Participant, memberIdx int, col string) string {
	switch col {
	case "team_code":
		return t.TeamCode
	case "team_name":
		return t.TeamName
	case "role":
		if p.Role == model.RoleLeader {
			return "Lead"
		}
		return fmt.Sprintf("Member %d", memberIdx)
	case "name":
		return p.Name
	case "register_number":
		return p.RegisterNumber
	case "mobile_number":
		return p.MobileNumber
	case "email":
		return p.Email
	case "gender":
		return p.Gender
	case "year_of_study":
		return p.YearOfStudy
	case "department":
		return p.Department
	case "accommodation":
		if p.IsHosteler {
			return "Hosteler"
		}
		return "Day Scholar"
	case "hostel_name":
		return p.HostelName
	case "room_number":
		return p.RoomNumber
	case "payment_status":
		return string(t.PaymentStatus)
	case "transaction_ref":
		return t.TransactionRef
	case "proof_asset_ref":
		return t.ProofAssetRef
	default:
		return ""
	}
}
