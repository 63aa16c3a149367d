package mailer

import (
	"fmt"
	"html"
	"strings"

	"gopkg.in/gomail.v2"
)

// FeedbackAlert is the content of a negative feedback notification.
type FeedbackAlert struct {
	SessionId    string
	FeedbackId   string
	Rating       string
	FeedbackText string
	Transcript   []TranscriptLine
}

type TranscriptLine struct {
	Role    string
	Content string
}

type IEmailService interface {
	SendFeedbackAlert(toEmail string, alert FeedbackAlert) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName string) IEmailService {
	return &emailService{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: senderEmail,
		senderName:  senderName,
	}
}

func (s *emailService) SendFeedbackAlert(toEmail string, alert FeedbackAlert) error {
	m := gomail.NewMessage()
	if s.senderName != "" {
		m.SetAddressHeader("From", s.senderEmail, s.senderName)
	} else {
		m.SetHeader("From", s.senderEmail)
	}
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Negative chatbot feedback (session %s)", alert.SessionId))
	m.SetBody("text/html", RenderFeedbackAlert(alert))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send feedback alert to %s: %w", toEmail, err)
	}
	return nil
}

// RenderFeedbackAlert builds the HTML body. Every user supplied value is escaped.
func RenderFeedbackAlert(alert FeedbackAlert) string {
	var b strings.Builder
	b.WriteString(`<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">`)
	b.WriteString("<h2>Chatbot feedback: " + html.EscapeString(alert.Rating) + "</h2>")
	fmt.Fprintf(&b, "<p><b>Session:</b> %s<br><b>Feedback id:</b> %s</p>",
		html.EscapeString(alert.SessionId), html.EscapeString(alert.FeedbackId))

	if alert.FeedbackText != "" {
		b.WriteString("<blockquote>" + html.EscapeString(alert.FeedbackText) + "</blockquote>")
	}

	if len(alert.Transcript) > 0 {
		b.WriteString("<h3>Conversation</h3><ol>")
		for _, line := range alert.Transcript {
			fmt.Fprintf(&b, "<li><b>%s:</b> %s</li>", html.EscapeString(line.Role), html.EscapeString(line.Content))
		}
		b.WriteString("</ol>")
	}

	b.WriteString("</div>")
	return b.String()
}
