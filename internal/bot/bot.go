// Package bot answers revised target queries over Telegram.
package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"raintarget/internal/metrics"
)

// Sender is the part of the Telegram client the bot replies through.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Options configure a Bot.
type Options struct {
	Token          string
	ScheduledOvers int
	AllowedUsers   []int64
	UpdateTimeout  time.Duration
	Logger         zerolog.Logger
	Recorder       *metrics.Recorder
}

type Bot struct {
	api      *tgbotapi.BotAPI
	sender   Sender
	allowed  map[int64]bool
	overs    int
	timeout  time.Duration
	logger   zerolog.Logger
	recorder *metrics.Recorder
}

// New authorizes against the Telegram API.
func New(opts Options) (*Bot, error) {
	if opts.Token == "" {
		return nil, errors.New("telegram bot token is required (--token or RAINTARGET_TELEGRAM_TOKEN)")
	}
	api, err := tgbotapi.NewBotAPI(opts.Token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}
	b := newBot(api, opts)
	b.api = api
	b.logger.Info().Str("account", api.Self.UserName).Msg("authorized on telegram")
	return b, nil
}

func newBot(sender Sender, opts Options) *Bot {
	allowed := make(map[int64]bool, len(opts.AllowedUsers))
	for _, id := range opts.AllowedUsers {
		allowed[id] = true
	}
	timeout := opts.UpdateTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Bot{
		sender:   sender,
		allowed:  allowed,
		overs:    opts.ScheduledOvers,
		timeout:  timeout,
		logger:   opts.Logger,
		recorder: opts.Recorder,
	}
}

// Run long-polls for updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	if b.api == nil {
		return errors.New("bot has no telegram client")
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = int(b.timeout / time.Second)
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info().Msg("telegram bot stopped")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.HandleMessage(update.Message)
		}
	}
}

// HandleMessage replies to a single incoming message.
func (b *Bot) HandleMessage(m *tgbotapi.Message) {
	if !b.isAllowed(m.From) {
		b.send(m.Chat.ID, accessDenied, false)
		return
	}

	reply, markdown := b.respond(m.Text)
	if reply == "" {
		return
	}
	b.send(m.Chat.ID, reply, markdown)
}

// isAllowed reports whether from may use the bot. With an allow-list set, a
// message without a sender, such as a channel post, is denied.
func (b *Bot) isAllowed(from *tgbotapi.User) bool {
	if len(b.allowed) == 0 {
		return true
	}
	return from != nil && b.allowed[from.ID]
}

func (b *Bot) send(chatID int64, text string, markdown bool) {
	msg := tgbotapi.NewMessage(chatID, text)
	if markdown {
		msg.ParseMode = tgbotapi.ModeMarkdown
	}
	if _, err := b.sender.Send(msg); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("send telegram reply")
	}
}
