package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"sync"

	"github.com/rs/zerolog/log"
)

const templatePayoutCompleted = "payout_completed"

// Sender delivers a rendered message
type Sender interface {
	Send(ctx context.Context, msg *EmailMessage) error
}

// Service renders templates and sends them from a background queue
type Service struct {
	sender    Sender
	templates map[string]*template.Template
	base      *template.Template
	queue     chan *QueuedEmail
	wg        sync.WaitGroup
}

// QueuedEmail represents an email in the send queue
type QueuedEmail struct {
	To           string
	ToName       string
	Subject      string
	TemplateName string
	Data         interface{}
}

// NewService creates email service backed by SendGrid
func NewService(config SendGridConfig) *Service {
	return NewServiceWithSender(NewSendGridClient(config))
}

// NewServiceWithSender creates email service with a custom sender
func NewServiceWithSender(sender Sender) *Service {
	s := &Service{
		sender:    sender,
		templates: make(map[string]*template.Template),
		base:      template.Must(template.New("base").Parse(BaseTemplate)),
		queue:     make(chan *QueuedEmail, 100),
	}

	s.templates[templatePayoutCompleted] = template.Must(template.New(templatePayoutCompleted).Parse(PayoutCompletedTemplate))

	s.wg.Add(1)
	go s.worker()

	return s
}

func (s *Service) worker() {
	defer s.wg.Done()

	for email := range s.queue {
		if err := s.send(context.Background(), email); err != nil {
			log.Error().Err(err).
				Str("to", email.To).
				Str("template", email.TemplateName).
				Msg("Failed to send email")
		}
	}
}

func (s *Service) send(ctx context.Context, email *QueuedEmail) error {
	tmpl, ok := s.templates[email.TemplateName]
	if !ok {
		return fmt.Errorf("email template %q not found", email.TemplateName)
	}

	var content bytes.Buffer
	if err := tmpl.Execute(&content, email.Data); err != nil {
		return err
	}

	var html bytes.Buffer
	if err := s.base.Execute(&html, map[string]interface{}{
		"Content": template.HTML(content.String()),
	}); err != nil {
		return err
	}

	return s.sender.Send(ctx, &EmailMessage{
		To:          email.To,
		ToName:      email.ToName,
		Subject:     email.Subject,
		HTMLContent: html.String(),
	})
}

// Queue adds an email to the async send queue, dropping it when full
func (s *Service) Queue(to, toName, templateName, subject string, data interface{}) {
	select {
	case s.queue <- &QueuedEmail{
		To:           to,
		ToName:       toName,
		Subject:      subject,
		TemplateName: templateName,
		Data:         data,
	}:
	default:
		log.Warn().Str("to", to).Msg("Email queue full, dropping email")
	}
}

// Close drains the queue and stops the worker
func (s *Service) Close() {
	close(s.queue)
	s.wg.Wait()
}

// SendPayoutCompleted queues the instructor payout notification
func (s *Service) SendPayoutCompleted(to, toName, period, amount, reference string) {
	s.Queue(to, toName, templatePayoutCompleted, "Your TutorHub payout for "+period, map[string]string{
		"InstructorName": toName,
		"Period":         period,
		"Amount":         amount,
		"Reference":      reference,
	})
}
