package telegram

import (
	"PoundsBosses/internal/core/domain"
	"PoundsBosses/internal/core/ports"
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// sender is the slice of the bot API the notifier needs.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// ReviewNotifier forwards ledger events to the admin review channel. The
// payout itself stays manual; the channel message is how the reviewers
// learn a debited ticket is waiting.
type ReviewNotifier struct {
	api          sender
	reviewChatID int64
	log          zerolog.Logger
}

// NewReviewNotifier creates a notifier posting into the given chat.
func NewReviewNotifier(api *tgbotapi.BotAPI, reviewChatID int64, baseLogger *zerolog.Logger) *ReviewNotifier {
	return &ReviewNotifier{
		api:          api,
		reviewChatID: reviewChatID,
		log:          baseLogger.With().Str("component", "review_notifier").Logger(),
	}
}

// Register subscribes the notifier to the ledger topics.
func (n *ReviewNotifier) Register(bus ports.EventBus) {
	bus.Subscribe(domain.TopicWithdrawalRequested, n.handleWithdrawalRequested)
	bus.Subscribe(domain.TopicAccountFunded, n.handleAccountFunded)
}

func (n *ReviewNotifier) handleWithdrawalRequested(ctx context.Context, event ports.Event) error {
	ev, ok := event.Payload.(domain.WithdrawalRequestedEvent)
	if !ok {
		return fmt.Errorf("unexpected payload type %T on %s", event.Payload, event.Topic)
	}

	// Bank and holder names came in from user input and the external
	// resolver; escape them so they cannot forge the channel rendering.
	text := fmt.Sprintf(
		"🔔 *Withdrawal pending review*\n\n"+
			"User: `%s`\n"+
			"Amount: *%s*\n"+
			"Bank: %s\n"+
			"Account: `%s` (%s)\n"+
			"Ticket: `%s`",
		tgbotapi.EscapeText(tgbotapi.ModeMarkdown, ev.UserID),
		formatNaira(ev.Amount),
		tgbotapi.EscapeText(tgbotapi.ModeMarkdown, ev.BankName),
		tgbotapi.EscapeText(tgbotapi.ModeMarkdown, ev.AccountNumber),
		tgbotapi.EscapeText(tgbotapi.ModeMarkdown, ev.AccountName),
		ev.TicketID,
	)
	return n.send(text, event.Topic)
}

func (n *ReviewNotifier) handleAccountFunded(ctx context.Context, event ports.Event) error {
	ev, ok := event.Payload.(domain.AccountFundedEvent)
	if !ok {
		return fmt.Errorf("unexpected payload type %T on %s", event.Payload, event.Topic)
	}

	text := fmt.Sprintf(
		"💰 Account funded\n\nUser: `%s`\nAmount: *%s*\nReference: `%s`",
		tgbotapi.EscapeText(tgbotapi.ModeMarkdown, ev.UserID),
		formatNaira(ev.Amount),
		tgbotapi.EscapeText(tgbotapi.ModeMarkdown, ev.Reference),
	)
	return n.send(text, event.Topic)
}

func (n *ReviewNotifier) send(text, topic string) error {
	msg := tgbotapi.NewMessage(n.reviewChatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	if _, err := n.api.Send(msg); err != nil {
		n.log.Error().Err(err).Str("topic", topic).Msg("Failed to post to review channel")
		return err
	}
	n.log.Info().Str("topic", topic).Msg("Posted to review channel")
	return nil
}

// formatNaira renders an amount as ₦1,234,567.89.
func formatNaira(amount decimal.Decimal) string {
	s := amount.StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	whole, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%s₦%s.%s", sign, b.String(), frac)
}
