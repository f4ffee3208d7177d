//go:build e2e
// +build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	teamModel "github.com/createx/registration/internal/team/model"
)

func (s *E2ETestSuite) TestRegistrationAndReviewFlow() {
	// Register.
	body, contentType := s.registrationForm("Nova", "TXN-E2E-1")
	resp, payload := s.request("POST", "/api/register", body, contentType, false)
	require.Equal(s.T(), http.StatusCreated, resp.StatusCode, string(payload))

	var reg teamModel.RegistrationResponse
	require.NoError(s.T(), json.Unmarshal(payload, &reg))
	assert.NotEmpty(s.T(), reg.TeamCode)
	s.runner.Wait()

	// Duplicate name, different case, rejected by the postgres unique index.
	body, contentType = s.registrationForm("nova", "TXN-E2E-2")
	resp, payload = s.request("POST", "/api/register", body, contentType, false)
	require.Equal(s.T(), http.StatusBadRequest, resp.StatusCode)
	assert.Contains(s.T(), string(payload), "TEAM_EXISTS")

	// Duplicate transaction reference.
	body, contentType = s.registrationForm("Orbit", "TXN-E2E-1")
	resp, payload = s.request("POST", "/api/register", body, contentType, false)
	require.Equal(s.T(), http.StatusBadRequest, resp.StatusCode)
	assert.Contains(s.T(), string(payload), "TRANSACTION_REF_EXISTS")

	// Verify the payment.
	review, _ := json.Marshal(teamModel.ReviewRequest{TeamCode: reg.TeamCode, Decision: "Verified"})
	resp, payload = s.request("PUT", "/api/admin/verify", bytes.NewReader(review), "application/json", true)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode, string(payload))

	// Stats reflect the verified team.
	resp, payload = s.request("GET", "/api/stats", nil, "", false)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)
	var stats teamModel.StatsResponse
	require.NoError(s.T(), json.Unmarshal(payload, &stats))
	assert.Equal(s.T(), int64(1), stats.VerifiedCount)
	assert.Equal(s.T(), int64(75), stats.Limit)

	// Leader sees the decision.
	resp, payload = s.request("GET", "/api/status?team_code="+reg.TeamCode+"&register_number=RA-Nova", nil, "", false)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)
	assert.Contains(s.T(), string(payload), "Verified")
}

func (s *E2ETestSuite) TestLimitGatesRegistration() {
	// Lower the limit to 1.
	limit, _ := json.Marshal(map[string]int64{"limit": 1})
	resp, payload := s.request("PUT", "/api/admin/limit", bytes.NewReader(limit), "application/json", true)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode, string(payload))

	body, contentType := s.registrationForm("First", "TXN-L-1")
	resp, payload = s.request("POST", "/api/register", body, contentType, false)
	require.Equal(s.T(), http.StatusCreated, resp.StatusCode, string(payload))
	s.runner.Wait()

	body, contentType = s.registrationForm("Second", "TXN-L-2")
	resp, payload = s.request("POST", "/api/register", body, contentType, false)
	require.Equal(s.T(), http.StatusBadRequest, resp.StatusCode)
	assert.Contains(s.T(), string(payload), "REGISTRATION_CLOSED")
}

func (s *E2ETestSuite) TestAdminRegisterBypassesLimit() {
	limit, _ := json.Marshal(map[string]int64{"limit": 0})
	resp, payload := s.request("PUT", "/api/admin/limit", bytes.NewReader(limit), "application/json", true)
	// A zero limit is rejected; use 1 and fill it instead.
	require.Equal(s.T(), http.StatusBadRequest, resp.StatusCode, string(payload))

	limit, _ = json.Marshal(map[string]int64{"limit": 1})
	resp, _ = s.request("PUT", "/api/admin/limit", bytes.NewReader(limit), "application/json", true)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	body, contentType := s.registrationForm("First", "TXN-A-1")
	resp, _ = s.request("POST", "/api/register", body, contentType, false)
	require.Equal(s.T(), http.StatusCreated, resp.StatusCode)
	s.runner.Wait()

	// The admin entry goes through despite the full roster of submissions.
	body, contentType = s.registrationForm("Walkin", "TXN-A-2")
	resp, payload = s.request("POST", "/api/admin/register", body, contentType, true)
	require.Equal(s.T(), http.StatusCreated, resp.StatusCode, string(payload))

	var reg teamModel.RegistrationResponse
	require.NoError(s.T(), json.Unmarshal(payload, &reg))
	var team teamModel.Team
	require.NoError(s.T(), s.db.First(&team, "team_code = ?", reg.TeamCode).Error)
	assert.Equal(s.T(), teamModel.StatusVerified, team.PaymentStatus)
	assert.True(s.T(), team.AdminOverride)
	s.runner.Wait()
}
