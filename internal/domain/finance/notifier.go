package finance

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// PayoutEventsChannel is the redis channel payout events are published on
const PayoutEventsChannel = "finance:payouts"

// PayoutNotifier is told about every recorded payout.
// Implementations log their own failures; a payout is never rolled back.
type PayoutNotifier interface {
	PayoutCompleted(ctx context.Context, payout *Payout)
}

// NopNotifier drops notifications
type NopNotifier struct{}

func (NopNotifier) PayoutCompleted(context.Context, *Payout) {}

// MultiNotifier fans out to several notifiers in order
type MultiNotifier []PayoutNotifier

func (m MultiNotifier) PayoutCompleted(ctx context.Context, payout *Payout) {
	for _, n := range m {
		if n != nil {
			n.PayoutCompleted(ctx, payout)
		}
	}
}

// PayoutEvent is the message published for a completed payout
type PayoutEvent struct {
	Type         string    `json:"type"`
	PayoutID     string    `json:"payout_id"`
	InstructorID int64     `json:"instructor_id"`
	AmountPaid   float64   `json:"amount_paid"`
	Period       string    `json:"period"`
	PaidAt       time.Time `json:"paid_at"`
}

// RedisPublisher publishes payout events for other services (dashboards, notifications)
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

// NewRedisPublisher returns nil when redis is not configured
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	if client == nil {
		return nil
	}
	return &RedisPublisher{client: client, channel: PayoutEventsChannel}
}

func (p *RedisPublisher) PayoutCompleted(ctx context.Context, payout *Payout) {
	if p == nil || p.client == nil {
		return
	}

	payload, err := json.Marshal(newPayoutEvent(payout))
	if err != nil {
		log.Error().Err(err).Str("payout_id", payout.ID).Msg("Failed to encode payout event")
		return
	}

	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		log.Warn().Err(err).Str("payout_id", payout.ID).Str("channel", p.channel).Msg("Failed to publish payout event")
	}
}

func newPayoutEvent(p *Payout) PayoutEvent {
	return PayoutEvent{
		Type:         "payout.completed",
		PayoutID:     p.ID,
		InstructorID: p.InstructorID,
		AmountPaid:   p.AmountPaid,
		Period:       fmt.Sprintf("%04d-%02d", p.Year, p.Month),
		PaidAt:       p.PaidAt,
	}
}

// PayoutMailer sends the instructor-facing payout email
type PayoutMailer interface {
	SendPayoutCompleted(to, toName, period, amount, reference string)
}

// EmailNotifier emails the instructor when a payout is recorded
type EmailNotifier struct {
	mailer PayoutMailer
}

// NewEmailNotifier returns nil when no mailer is configured
func NewEmailNotifier(mailer PayoutMailer) *EmailNotifier {
	if mailer == nil {
		return nil
	}
	return &EmailNotifier{mailer: mailer}
}

func (n *EmailNotifier) PayoutCompleted(_ context.Context, payout *Payout) {
	if n == nil || payout.InstructorEmail == "" {
		return
	}
	n.mailer.SendPayoutCompleted(
		payout.InstructorEmail,
		payout.InstructorName,
		fmt.Sprintf("%04d-%02d", payout.Year, payout.Month),
		fmt.Sprintf("R %.2f", payout.AmountPaid),
		payout.PaymentReference,
	)
}
