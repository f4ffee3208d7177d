package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/createx/registration/internal/config"
)

// Client delivers email through a transactional provider's REST API
// (Brevo-compatible request shape: sender, recipients, subject, HTML body,
// api-key header).
type Client struct {
	apiURL string
	apiKey string
	sender string
	http   *http.Client
	logger *zap.SugaredLogger
}

// NewFromConfig builds a Notifier from registration configuration. A missing
// API URL or key yields the Disabled notifier.
func NewFromConfig(cfg config.RegistrationConfig, logger *zap.SugaredLogger) Notifier {
	if cfg.MailerAPIURL == "" || cfg.MailerAPIKey == "" {
		logger.Warnw("outbound email disabled, no mail provider configured")
		return Disabled{}
	}
	return &Client{
		apiURL: cfg.MailerAPIURL,
		apiKey: cfg.MailerAPIKey,
		sender: cfg.MailerSender,
		http:   &http.Client{Timeout: 30 * time.Second},
		logger: logger,
	}
}

type recipient struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendRequest struct {
	Sender      recipient   `json:"sender"`
	To          []recipient `json:"to"`
	Subject     string      `json:"subject"`
	HTMLContent string      `json:"htmlContent"`
}

// SendRegistrationConfirmation implements Notifier.
func (c *Client) SendRegistrationConfirmation(ctx context.Context, conf Confirmation) error {
	subject := fmt.Sprintf("Registration received — %s", conf.TeamCode)
	return c.send(ctx, conf.LeaderEmail, conf.LeaderName, subject, confirmationBody(conf))
}

// SendPaymentDecision implements Notifier.
func (c *Client) SendPaymentDecision(ctx context.Context, d Decision) error {
	subject := fmt.Sprintf("Payment %s — %s", d.Status, d.TeamCode)
	return c.send(ctx, d.LeaderEmail, d.LeaderName, subject, decisionBody(d))
}

func (c *Client) send(ctx context.Context, toEmail, toName, subject, html string) error {
	body, err := json.Marshal(sendRequest{
		Sender:      recipient{Email: c.sender},
		To:          []recipient{{Email: toEmail, Name: toName}},
		Subject:     subject,
		HTMLContent: html,
	})
	if err != nil {
		return fmt.Errorf("encoding email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sending email to %s: %w", toEmail, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mail provider returned %d: %s", resp.StatusCode, string(detail))
	}

	c.logger.Infow("email sent", "to", toEmail, "subject", subject)
	return nil
}

func confirmationBody(c Confirmation) string {
	var members bytes.Buffer
	for i, m := range c.Members {
		fmt.Fprintf(&members, "<tr><td>%d. %s</td><td>%s</td></tr>", i+1, m.Name, m.RegisterNumber)
	}
	return fmt.Sprintf(
		`<h2>Registration received</h2>
<p>Dear %s,</p>
<p>Your team <strong>%s</strong> is registered with team code <strong>%s</strong>.
Keep this code: you will need it to check your payment status.</p>
<table>%s</table>
<p>Your payment is under review; we will email you once it has been verified.</p>`,
		c.LeaderName, c.TeamName, c.TeamCode, members.String())
}

func decisionBody(d Decision) string {
	if d.Status == "Rejected" {
		return fmt.Sprintf(
			`<h2>Payment rejected</h2>
<p>Dear %s,</p>
<p>The payment for team <strong>%s</strong> (%s) could not be verified: %s.</p>
<p>Please contact the organizers to resolve this.</p>`,
			d.LeaderName, d.TeamName, d.TeamCode, d.RejectionReason)
	}
	return fmt.Sprintf(
		`<h2>Payment %s</h2>
<p>Dear %s,</p>
<p>The payment for team <strong>%s</strong> (%s) has been %s. See you at the event!</p>`,
		d.Status, d.LeaderName, d.TeamName, d.TeamCode, d.Status)
}
