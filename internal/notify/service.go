package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/prodone-web/prodone-api/pkg/logging"
)

const (
	leadSubject         = "New Lead Magnet Submission - ProDone"
	confirmationSubject = "Your Meeting is Confirmed! 🎉"

	leadFromName         = "ProDone Website"
	confirmationFromName = "ProDone Team"

	defaultSendTimeout = 10 * time.Second
)

// LeadNotification carries the lead-form fields into an operator email.
type LeadNotification struct {
	Industry     string
	BusinessType string
	Name         string
	City         string
	Phone        string
	Email        string
	Message      string
}

// MeetingConfirmation carries booking details into an invitee email.
type MeetingConfirmation struct {
	InviteeName  string
	InviteeEmail string
	StartTime    time.Time
	MeetingLink  string // empty when no conferencing link could be resolved
}

// Service composes and dispatches outbound notification emails. It owns the
// operator-address fallback and bounds every gateway call with a deadline.
type Service struct {
	email         EmailSender
	operatorEmail string
	sendTimeout   time.Duration
	logger        *logging.Logger
}

// NewService creates a notification service.
func NewService(email EmailSender, operatorEmail string, sendTimeout time.Duration, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	if sendTimeout <= 0 {
		sendTimeout = defaultSendTimeout
	}
	return &Service{
		email:         email,
		operatorEmail: operatorEmail,
		sendTimeout:   sendTimeout,
		logger:        logger,
	}
}

// NotifyNewLead emails the operator about a new lead-form submission.
// Exactly one send per call; failures are classified, never retried here.
func (s *Service) NotifyNewLead(ctx context.Context, lead LeadNotification) error {
	if s.email == nil {
		return ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()

	body := fmt.Sprintf(`New Lead Magnet Submission

Contact Information
Name: %s
Email: %s
Phone: %s
City: %s

Business Information
Industry: %s
Business Type: %s

Project Description
%s

Action Required: Please respond to this lead within 24 hours.`,
		lead.Name, lead.Email, lead.Phone, lead.City,
		lead.Industry, lead.BusinessType, lead.Message)

	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
<h2 style="color: #ef4444; border-bottom: 2px solid #ef4444; padding-bottom: 10px;">🚀 New Lead Magnet Submission</h2>
<div style="background: #f8f9fa; padding: 20px; border-radius: 8px; margin: 20px 0;">
  <h3 style="color: #333; margin-top: 0;">Contact Information</h3>
  <p><strong>Name:</strong> %s</p>
  <p><strong>Email:</strong> %s</p>
  <p><strong>Phone:</strong> %s</p>
  <p><strong>City:</strong> %s</p>
</div>
<div style="background: #f8f9fa; padding: 20px; border-radius: 8px; margin: 20px 0;">
  <h3 style="color: #333; margin-top: 0;">Business Information</h3>
  <p><strong>Industry:</strong> %s</p>
  <p><strong>Business Type:</strong> %s</p>
</div>
<div style="background: #f8f9fa; padding: 20px; border-radius: 8px; margin: 20px 0;">
  <h3 style="color: #333; margin-top: 0;">Project Description</h3>
  <p style="white-space: pre-wrap;">%s</p>
</div>
<div style="text-align: center; margin-top: 30px; padding: 20px; background: #e8f5e8; border-radius: 8px;">
  <p style="margin: 0; color: #2d5a2d;"><strong>Action Required:</strong> Please respond to this lead within 24 hours.</p>
</div>
<hr style="margin: 30px 0; border: none; border-top: 1px solid #ddd;">
<p style="text-align: center; color: #666; font-size: 12px;">This message was sent from the ProDone website contact form.</p>
</div>`,
		lead.Name, lead.Email, lead.Phone, lead.City,
		lead.Industry, lead.BusinessType, lead.Message)

	msg := EmailMessage{
		To:       s.operatorEmail,
		FromName: leadFromName,
		Subject:  leadSubject,
		Body:     body,
		HTML:     html,
	}
	if err := s.email.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify: send lead notification: %w", err)
	}

	s.logger.Info("lead notification sent", "name", lead.Name, "email", lead.Email, "industry", lead.Industry)
	return nil
}

// SendMeetingConfirmation verifies the gateway connection, then emails the
// invitee their booking details. Verification failures are distinguishable
// from send failures.
func (s *Service) SendMeetingConfirmation(ctx context.Context, c MeetingConfirmation) error {
	if s.email == nil {
		return ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()

	if err := s.email.Verify(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrGatewayVerify, err)
	}

	when := c.StartTime.Format("Monday, January 2, 2006 at 3:04 PM")

	body := fmt.Sprintf(`Hi %s,

Thank you for booking a meeting with us. Here are your meeting details:

Date & Time: %s
Meeting Link: %s

You will receive a reminder 30 minutes before the meeting.
If you have any questions, just reply to this email.

Best regards,
ProDone Team`, c.InviteeName, when, c.MeetingLink)

	html := fmt.Sprintf(`<div style="font-family: 'Segoe UI', Arial, sans-serif; background: #18181b; color: #fff; padding: 32px; border-radius: 18px; max-width: 480px; margin: 0 auto;">
<div style="text-align:center; margin-bottom: 24px;">
  <h2 style="color: #38bdf8; font-size: 2rem; margin: 0;">Your Meeting is Confirmed!</h2>
</div>
<p style="font-size: 1.1rem;">Hi <b>%s</b>,</p>
<p style="margin-bottom: 18px;">Thank you for booking a meeting with us. Here are your meeting details:</p>
<div style="background: #23232b; border-radius: 12px; padding: 18px 20px; margin-bottom: 18px;">
  <p style="margin: 0 0 8px 0;"><b>Date &amp; Time:</b> %s</p>
  <p style="margin: 0 0 8px 0;"><b>Meeting Link:</b></p>
  <a href="%s" style="display:inline-block; background: linear-gradient(90deg, #38bdf8 0%%, #2563eb 100%%); color: #fff; font-weight: bold; padding: 14px 32px; border-radius: 12px; text-decoration: none; font-size: 1.1rem; margin-top: 8px;">Join Google Meet</a>
</div>
<p style="margin-bottom: 0.5rem;">You will receive a reminder 30 minutes before the meeting.</p>
<p style="margin-bottom: 0.5rem;">If you have any questions, just reply to this email.</p>
<div style="margin-top: 32px; text-align: center;">
  <span style="color: #38bdf8; font-weight: bold; font-size: 1.1rem;">Best regards,<br>ProDone Team</span>
</div>
</div>`, c.InviteeName, when, c.MeetingLink)

	msg := EmailMessage{
		To:       c.InviteeEmail,
		ToName:   c.InviteeName,
		FromName: confirmationFromName,
		Subject:  confirmationSubject,
		Body:     body,
		HTML:     html,
	}
	if err := s.email.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify: send meeting confirmation: %w", err)
	}

	s.logger.Info("meeting confirmation sent", "to", c.InviteeEmail, "start_time", c.StartTime)
	return nil
}
