// Package service provides the business logic for team registration.
//
// Admission is split into a synchronous committed part (capacity check,
// validation, uniqueness, code allocation, persist) and asynchronous
// best-effort work (proof asset finalization, confirmation email) that runs
// after the caller already has their team code. The capacity limit is soft:
// two concurrent submissions may both pass the advisory check, because the
// authoritative ceiling is the count of *verified* teams, which only
// administrators advance.
package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/createx/registration/internal/config"
	"github.com/createx/registration/internal/export"
	"github.com/createx/registration/internal/mailer"
	settingsModel "github.com/createx/registration/internal/settings/model"
	settingsRepo "github.com/createx/registration/internal/settings/repository"
	"github.com/createx/registration/internal/storage"
	"github.com/createx/registration/internal/team/allocator"
	"github.com/createx/registration/internal/team/model"
	"github.com/createx/registration/internal/team/repository"
	"github.com/createx/registration/pkg/tasks"
)

// Service defines the interface for team business logic operations.
type Service interface {
	// Stats reports the capacity gate state: verified team count against the
	// configured limit.
	Stats(ctx context.Context) (*model.StatsResponse, error)

	// Register admits a self-registered team (status Pending).
	Register(ctx context.Context, req *model.RegisterRequest) (*model.RegistrationResponse, error)

	// RegisterByAdmin admits an admin-entered team: no capacity check and
	// status Verified, since admin entries are presumed pre-verified.
	RegisterByAdmin(ctx context.Context, req *model.RegisterRequest) (*model.RegistrationResponse, error)

	// TeamNameAvailable reports whether a team name is still free
	// (case-insensitive).
	TeamNameAvailable(ctx context.Context, teamName string) (bool, error)

	// CheckStatus returns the payment status for a team, keyed by team code
	// plus the leader's register number.
	CheckStatus(ctx context.Context, teamCode, registerNumber string) (*model.StatusResponse, error)

	// ListTeams returns all teams, newest first.
	ListTeams(ctx context.Context) ([]model.TeamResponse, error)

	// Review applies an administrator payment decision and synchronously
	// attempts the notification email. The decision commits even when the
	// email fails; the response says whether the team was informed.
	Review(ctx context.Context, req *model.ReviewRequest) (*model.ReviewResponse, error)

	// ResendDecisionEmail re-sends the status email for the team's current
	// status without changing it.
	ResendDecisionEmail(ctx context.Context, teamCode string) (*model.ReviewResponse, error)

	// Export writes a CSV of teams matching the request to w.
	Export(ctx context.Context, req *model.ExportRequest, w io.Writer) error

	// DeleteTeam removes a single team.
	DeleteTeam(ctx context.Context, teamCode string) error

	// DeleteAllTeams removes every team.
	DeleteAllTeams(ctx context.Context) error
}

type service struct {
	repo     repository.Repository
	alloc    allocator.Allocator
	settings settingsRepo.Repository
	store    storage.Store
	notifier mailer.Notifier
	runner   *tasks.Runner
	cfg      config.RegistrationConfig
	logger   *zap.SugaredLogger
}

// New creates a new team service instance.
func New(
	repo repository.Repository,
	alloc allocator.Allocator,
	settings settingsRepo.Repository,
	store storage.Store,
	notifier mailer.Notifier,
	runner *tasks.Runner,
	cfg config.RegistrationConfig,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		repo:     repo,
		alloc:    alloc,
		settings: settings,
		store:    store,
		notifier: notifier,
		runner:   runner,
		cfg:      cfg,
		logger:   logger,
	}
}

func (s *service) limit(ctx context.Context) (int64, error) {
	return s.settings.GetInt(ctx, settingsModel.KeyRegistrationLimit, settingsModel.DefaultRegistrationLimit)
}

// Stats counts verified teams only: pending submissions may still be
// rejected and must not permanently consume capacity.
func (s *service) Stats(ctx context.Context) (*model.StatsResponse, error) {
	verified, err := s.repo.CountByStatus(ctx, model.StatusVerified)
	if err != nil {
		return nil, err
	}
	limit, err := s.limit(ctx)
	if err != nil {
		return nil, err
	}
	return &model.StatsResponse{
		VerifiedCount: verified,
		Limit:         limit,
		Open:          verified < limit,
	}, nil
}

func (s *service) Register(ctx context.Context, req *model.RegisterRequest) (*model.RegistrationResponse, error) {
	// Advisory gate against the total submitted count to stop obviously
	// late submissions. Not transactional with the insert.
	limit, err := s.limit(ctx)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	if total >= limit {
		return nil, model.ErrRegistrationClosed
	}

	return s.admit(ctx, req, model.StatusPending, false)
}

func (s *service) RegisterByAdmin(ctx context.Context, req *model.RegisterRequest) (*model.RegistrationResponse, error) {
	return s.admit(ctx, req, model.StatusVerified, true)
}

// admit runs the shared tail of the admission pipeline: validate, check
// uniqueness, allocate, persist, then hand the best-effort work to the
// background runner.
func (s *service) admit(
	ctx context.Context,
	req *model.RegisterRequest,
	status model.PaymentStatus,
	adminOverride bool,
) (*model.RegistrationResponse, error) {
	// Shape validation precedes allocation: a rejected submission must not
	// consume a sequence number.
	if err := validate(req); err != nil {
		return nil, err
	}

	// Fast-fail duplicate checks. These are advisory; the unique indexes
	// catch whatever slips through the check-then-insert window.
	normalized := model.NormalizeTeamName(req.TeamName)
	nameTaken, err := s.repo.TeamNameExists(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if nameTaken {
		return nil, model.ErrTeamNameTaken
	}
	refTaken, err := s.repo.TransactionRefExists(ctx, req.TransactionRef)
	if err != nil {
		return nil, err
	}
	if refTaken {
		return nil, model.ErrTransactionRefTaken
	}

	teamCode, err := s.alloc.Allocate(ctx)
	if err != nil {
		return nil, err
	}

	team := buildTeam(teamCode, req, status, adminOverride, s.cfg.EntryFee)
	if err := s.repo.Create(ctx, team); err != nil {
		return nil, err
	}

	s.logger.Infow("team admitted",
		"team_code", teamCode,
		"team_name", req.TeamName,
		"status", status,
		"admin_override", adminOverride,
	)

	// The caller has its answer once the record is committed; everything
	// below must not affect the admission outcome.
	s.finalizeProofInBackground(teamCode, req.TeamName, req.ProofAssetRef)
	s.sendConfirmationInBackground(teamCode, req)

	return &model.RegistrationResponse{TeamCode: teamCode}, nil
}

func validate(req *model.RegisterRequest) error {
	if strings.TrimSpace(req.TeamName) == "" {
		return model.ErrInvalidTeamName
	}
	if strings.TrimSpace(req.TransactionRef) == "" {
		return model.ErrMissingTransactionRef
	}
	if req.ProofAssetRef == "" {
		return model.ErrMissingProof
	}
	if len(req.Members) != model.MembersPerTeam {
		return model.ErrRosterSize
	}
	if err := validateEntry(req.Leader); err != nil {
		return err
	}
	for _, m := range req.Members {
		if err := validateEntry(m); err != nil {
			return err
		}
	}
	return nil
}

func validateEntry(e model.RosterEntry) error {
	if strings.TrimSpace(e.Name) == "" ||
		strings.TrimSpace(e.RegisterNumber) == "" ||
		strings.TrimSpace(e.MobileNumber) == "" ||
		strings.TrimSpace(e.Gender) == "" ||
		strings.TrimSpace(e.YearOfStudy) == "" ||
		strings.TrimSpace(e.Department) == "" {
		return model.ErrIncompleteRoster
	}
	if e.IsHosteler && strings.TrimSpace(e.HostelName) == "" {
		return model.ErrIncompleteRoster
	}
	return nil
}

func buildTeam(
	teamCode string,
	req *model.RegisterRequest,
	status model.PaymentStatus,
	adminOverride bool,
	entryFee int,
) *model.Team {
	now := time.Now()
	team := &model.Team{
		TeamCode:           teamCode,
		TeamName:           req.TeamName,
		TeamNameNormalized: model.NormalizeTeamName(req.TeamName),
		PaymentAmount:      entryFee,
		TransactionRef:     req.TransactionRef,
		ProofAssetRef:      req.ProofAssetRef,
		PaymentStatus:      status,
		AdminOverride:      adminOverride,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	team.Participants = make([]model.Participant, 0, len(req.Members)+1)
	team.Participants = append(team.Participants, toParticipant(teamCode, 0, model.RoleLeader, req.Leader))
	for i, m := range req.Members {
		team.Participants = append(team.Participants, toParticipant(teamCode, i+1, model.RoleMember, m))
	}
	return team
}

func toParticipant(teamCode string, position int, role model.RosterRole, e model.RosterEntry) model.Participant {
	return model.Participant{
		TeamCode:       teamCode,
		Position:       position,
		Role:           role,
		Name:           e.Name,
		RegisterNumber: e.RegisterNumber,
		MobileNumber:   e.MobileNumber,
		Email:          e.Email,
		Gender:         e.Gender,
		YearOfStudy:    e.YearOfStudy,
		Department:     e.Department,
		IsHosteler:     e.IsHosteler,
		HostelName:     e.HostelName,
		RoomNumber:     e.RoomNumber,
	}
}

// finalizeProofInBackground moves the proof asset to a team-code-qualified
// name. On failure the provisional reference stays valid, so the record is
// left alone.
func (s *service) finalizeProofInBackground(teamCode, teamName, provisionalRef string) {
	s.runner.Go("finalize-proof-asset", func(ctx context.Context) error {
		hint := fmt.Sprintf("%s-%s", teamCode, teamName)
		ref, err := s.store.Finalize(ctx, provisionalRef, hint)
		if err != nil {
			return err
		}
		return s.repo.UpdateProofAssetRef(ctx, teamCode, ref)
	})
}

// sendConfirmationInBackground sends the registration email. Notification
// bookkeeping fields belong to the review stage and are not touched here;
// success is only visible in logs.
func (s *service) sendConfirmationInBackground(teamCode string, req *model.RegisterRequest) {
	if req.Leader.Email == "" {
		return
	}
	members := make([]mailer.Member, 0, len(req.Members))
	for _, m := range req.Members {
		members = append(members, mailer.Member{Name: m.Name, RegisterNumber: m.RegisterNumber})
	}
	conf := mailer.Confirmation{
		TeamCode:    teamCode,
		TeamName:    req.TeamName,
		LeaderEmail: req.Leader.Email,
		LeaderName:  req.Leader.Name,
		Members:     members,
	}
	s.runner.Go("registration-email", func(ctx context.Context) error {
		return s.notifier.SendRegistrationConfirmation(ctx, conf)
	})
}

func (s *service) TeamNameAvailable(ctx context.Context, teamName string) (bool, error) {
	if strings.TrimSpace(teamName) == "" {
		return false, model.ErrInvalidTeamName
	}
	taken, err := s.repo.TeamNameExists(ctx, model.NormalizeTeamName(teamName))
	if err != nil {
		return false, err
	}
	return !taken, nil
}

// CheckStatus deliberately answers "not found" for a wrong register number,
// so payment status leaks only to the team's own leader.
func (s *service) CheckStatus(ctx context.Context, teamCode, registerNumber string) (*model.StatusResponse, error) {
	team, err := s.repo.GetByCode(ctx, teamCode)
	if err != nil {
		return nil, err
	}
	leader := team.Leader()
	if leader == nil || leader.RegisterNumber != registerNumber {
		return nil, model.ErrTeamNotFound
	}
	return &model.StatusResponse{
		Status:          string(team.PaymentStatus),
		RejectionReason: team.RejectionReason,
	}, nil
}

func (s *service) ListTeams(ctx context.Context) ([]model.TeamResponse, error) {
	teams, err := s.repo.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	responses := make([]model.TeamResponse, 0, len(teams))
	for i := range teams {
		responses = append(responses, model.ToTeamResponse(&teams[i]))
	}
	return responses, nil
}

func (s *service) Review(ctx context.Context, req *model.ReviewRequest) (*model.ReviewResponse, error) {
	decision := model.PaymentStatus(req.Decision)
	if decision != model.StatusVerified && decision != model.StatusRejected {
		return nil, model.ErrInvalidDecision
	}
	if decision == model.StatusRejected && strings.TrimSpace(req.RejectionReason) == "" {
		return nil, model.ErrRejectionReasonRequired
	}

	// Re-reviewing an already-decided team is allowed: mistaken decisions
	// must be correctable.
	team, err := s.repo.GetByCode(ctx, req.TeamCode)
	if err != nil {
		return nil, err
	}

	team.PaymentStatus = decision
	if decision == model.StatusRejected {
		team.RejectionReason = req.RejectionReason
	} else {
		team.RejectionReason = ""
	}

	return s.commitWithNotification(ctx, team)
}

func (s *service) ResendDecisionEmail(ctx context.Context, teamCode string) (*model.ReviewResponse, error) {
	team, err := s.repo.GetByCode(ctx, teamCode)
	if err != nil {
		return nil, err
	}
	return s.commitWithNotification(ctx, team)
}

// commitWithNotification sends the decision email for the team's current
// status, records the outcome on the team, and saves. Administrators need to
// know immediately whether the team was informed, so the send is awaited —
// but its failure never blocks the state change.
func (s *service) commitWithNotification(ctx context.Context, team *model.Team) (*model.ReviewResponse, error) {
	emailSent := false
	if leader := team.Leader(); leader != nil && leader.Email != "" {
		err := s.notifier.SendPaymentDecision(ctx, mailer.Decision{
			TeamCode:        team.TeamCode,
			TeamName:        team.TeamName,
			LeaderEmail:     leader.Email,
			LeaderName:      leader.Name,
			Status:          string(team.PaymentStatus),
			RejectionReason: team.RejectionReason,
		})
		if err != nil {
			s.logger.Errorw("payment decision email failed",
				"team_code", team.TeamCode, "error", err)
		}
		emailSent = err == nil
	}

	team.NotificationSent = emailSent
	if emailSent {
		now := time.Now()
		team.NotificationSentAt = &now
	}

	if err := s.repo.Update(ctx, team); err != nil {
		return nil, err
	}

	return &model.ReviewResponse{
		Team:      model.ToTeamResponse(team),
		EmailSent: emailSent,
	}, nil
}

func (s *service) Export(ctx context.Context, req *model.ExportRequest, w io.Writer) error {
	teams, err := s.repo.List(ctx, req.TeamCodes)
	if err != nil {
		return err
	}
	return export.WriteCSV(w, teams, export.Options{
		Filter:  req.Filter,
		Columns: req.Columns,
	})
}

func (s *service) DeleteTeam(ctx context.Context, teamCode string) error {
	return s.repo.Delete(ctx, teamCode)
}

func (s *service) DeleteAllTeams(ctx context.Context) error {
	return s.repo.DeleteAll(ctx)
}
