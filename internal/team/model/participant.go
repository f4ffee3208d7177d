package model

// RosterRole distinguishes the leader from regular members.
type RosterRole string

const (
	RoleLeader RosterRole = "Leader"
	RoleMember RosterRole = "Member"
)

// MembersPerTeam is the required number of members besides the leader.
// Every persisted team has exactly MembersPerTeam+1 roster entries.
const MembersPerTeam = 4

// Participant is one roster entry of a team. Position 0 is the leader,
// positions 1..4 are the members.
// Matches the participants table schema.
type Participant struct {
	TeamCode       string     `gorm:"primaryKey;column:team_code;type:varchar(32)" json:"-"`
	Position       int        `gorm:"primaryKey;column:position"                   json:"position"`
	Role           RosterRole `gorm:"column:role;type:varchar(8);not null"         json:"role"`
	Name           string     `gorm:"column:name;type:varchar(255);not null"       json:"name"`
	RegisterNumber string     `gorm:"column:register_number;type:varchar(64);not null" json:"register_number"`
	MobileNumber   string     `gorm:"column:mobile_number;type:varchar(32);not null"   json:"mobile_number"`
	Email          string     `gorm:"column:email;type:varchar(255)"               json:"email,omitempty"`
	Gender         string     `gorm:"column:gender;type:varchar(16);not null"      json:"gender"`
	YearOfStudy    string     `gorm:"column:year_of_study;type:varchar(16);not null" json:"year_of_study"`
	Department     string     `gorm:"column:department;type:varchar(128);not null" json:"department"`
	IsHosteler     bool       `gorm:"column:is_hosteler;not null;default:false"    json:"is_hosteler"`
	HostelName     string     `gorm:"column:hostel_name;type:varchar(128)"         json:"hostel_name,omitempty"`
	RoomNumber     string     `gorm:"column:room_number;type:varchar(32)"          json:"room_number,omitempty"`
}

// TableName specifies the table name for GORM.
func (Participant) TableName() string {
	return "participants"
}
