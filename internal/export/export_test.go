package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	teamModel "github.com/createx/registration/internal/team/model"
)

func sampleTeam(code, name string, status teamModel.PaymentStatus) teamModel.Team {
	return teamModel.Team{
		TeamCode:       code,
		TeamName:       name,
		TransactionRef: "TXN-" + code,
		ProofAssetRef:  code + ".png",
		PaymentStatus:  status,
		Participants: []teamModel.Participant{
			{
				TeamCode: code, Position: 0, Role: teamModel.RoleLeader,
				Name: "Asha", RegisterNumber: "RA1", MobileNumber: "9000000000",
				Gender: "Female", YearOfStudy: "3", Department: "CSE",
				IsHosteler: true, HostelName: "Ganga", RoomNumber: "101",
			},
			{
				TeamCode: code, Position: 1, Role: teamModel.RoleMember,
				Name: "Bala", RegisterNumber: "RA2", MobileNumber: "9000000001",
				Gender: "Male", YearOfStudy: "2", Department: "ECE",
			},
			{
				TeamCode: code, Position: 2, Role: teamModel.RoleMember,
				Name: "Charu", RegisterNumber: "RA3", MobileNumber: "9000000002",
				Gender: "Female", YearOfStudy: "2", Department: "CSE",
				IsHosteler: true, HostelName: "Kaveri", RoomNumber: "202",
			},
		},
	}
}

func rows(t *testing.T, out string) []string {
	t.Helper()
	return strings.Split(strings.TrimSpace(out), "\n")
}

func TestWriteCSV(t *testing.T) {
	t.Run("default columns with one row per participant", func(t *testing.T) {
		teams := []teamModel.Team{sampleTeam("CREATOR-001", "Nova", teamModel.StatusVerified)}
		var buf strings.Builder

		require.NoError(t, WriteCSV(&buf, teams, Options{}))

		lines := rows(t, buf.String())
		require.Len(t, lines, 4)
		assert.True(t, strings.HasPrefix(lines[0], "Team Code,Team Name,Role,Name"))
		assert.Contains(t, lines[1], "Lead")
		assert.Contains(t, lines[2], "Member 1")
		assert.Contains(t, lines[3], "Member 2")
	})

	t.Run("selected columns in order", func(t *testing.T) {
		teams := []teamModel.Team{sampleTeam("CREATOR-001", "Nova", teamModel.StatusPending)}
		var buf strings.Builder

		err := WriteCSV(&buf, teams, Options{Columns: []string{"name", "accommodation", "team_code"}})

		require.NoError(t, err)
		lines := rows(t, buf.String())
		assert.Equal(t, "Name,Accommodation,Team Code", lines[0])
		assert.Equal(t, "Asha,Hosteler,CREATOR-001", lines[1])
		assert.Equal(t, "Bala,Day Scholar,CREATOR-001", lines[2])
	})

	t.Run("unknown column fails", func(t *testing.T) {
		var buf strings.Builder
		err := WriteCSV(&buf, nil, Options{Columns: []string{"shoe_size"}})
		assert.ErrorContains(t, err, "shoe_size")
	})

	t.Run("gender filter keeps matching participants only", func(t *testing.T) {
		teams := []teamModel.Team{sampleTeam("CREATOR-001", "Nova", teamModel.StatusPending)}
		var buf strings.Builder

		err := WriteCSV(&buf, teams, Options{
			Filter:  teamModel.ExportFilter{Gender: "female"},
			Columns: []string{"name"},
		})

		require.NoError(t, err)
		lines := rows(t, buf.String())
		assert.Equal(t, []string{"Name", "Asha", "Charu"}, lines)
	})

	t.Run("accommodation filter", func(t *testing.T) {
		teams := []teamModel.Team{sampleTeam("CREATOR-001", "Nova", teamModel.StatusPending)}
		var buf strings.Builder

		err := WriteCSV(&buf, teams, Options{
			Filter:  teamModel.ExportFilter{Accommodation: "Day Scholar"},
			Columns: []string{"name"},
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"Name", "Bala"}, rows(t, buf.String()))
	})

	t.Run("status filter drops whole teams", func(t *testing.T) {
		teams := []teamModel.Team{
			sampleTeam("CREATOR-001", "Nova", teamModel.StatusVerified),
			sampleTeam("CREATOR-002", "Orbit", teamModel.StatusPending),
		}
		var buf strings.Builder

		err := WriteCSV(&buf, teams, Options{
			Filter:  teamModel.ExportFilter{Status: "Verified"},
			Columns: []string{"team_code"},
		})

		require.NoError(t, err)
		lines := rows(t, buf.String())
		require.Len(t, lines, 4)
		for _, line := range lines[1:] {
			assert.Equal(t, "CREATOR-001", line)
		}
	})

	t.Run("All wildcard matches everything", func(t *testing.T) {
		teams := []teamModel.Team{sampleTeam("CREATOR-001", "Nova", teamModel.StatusPending)}
		var buf strings.Builder

		err := WriteCSV(&buf, teams, Options{
			Filter:  teamModel.ExportFilter{Gender: "All", Status: "All", Year: "All", Accommodation: "All"},
			Columns: []string{"name"},
		})

		require.NoError(t, err)
		assert.Len(t, rows(t, buf.String()), 4)
	})

	t.Run("member numbering survives filtering", func(t *testing.T) {
		teams := []teamModel.Team{sampleTeam("CREATOR-001", "Nova", teamModel.StatusPending)}
		var buf strings.Builder

		err := WriteCSV(&buf, teams, Options{
			Filter:  teamModel.ExportFilter{Gender: "Female"},
			Columns: []string{"role", "name"},
		})

		require.NoError(t, err)
		lines := rows(t, buf.String())
		assert.Equal(t, "Member 2,Charu", lines[2])
	})
}
