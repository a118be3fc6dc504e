package notify

import (
	"fmt"
	"time"

	"core-nexus/internal/model"
	"core-nexus/internal/store"

	"go.uber.org/zap"
	"gopkg.in/telebot.v3"
)

// Notifier pushes new feedback to staff Telegram chats. It is optional:
// main only builds one when a bot token is configured.
type Notifier struct {
	Bot     *telebot.Bot
	SiteURL string
	store   *store.Store
	sugar   *zap.SugaredLogger
}

// NewNotifier initializes the Telegram bot and registers its commands.
func NewNotifier(token, siteURL string, s *store.Store, sugar *zap.SugaredLogger) (*Notifier, error) {
	pref := telebot.Settings{
		Token:  token,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := telebot.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	n := &Notifier{
		Bot:     b,
		SiteURL: siteURL,
		store:   s,
		sugar:   sugar,
	}

	n.setupHandlers()
	return n, nil
}

func (n *Notifier) setupHandlers() {
	n.Bot.Handle("/start", n.handleStart)
	n.Bot.Handle("/status", n.handleStatus)
}

// handleStart greets the staff member and, when a site URL is known,
// offers a button to open it. The chat id shown is what they paste into
// their staff account to receive feedback pushes.
func (n *Notifier) handleStart(c telebot.Context) error {
	message := fmt.Sprintf(
		"Hi %s! This is the CORE DEVS feedback bot.\nYour chat id is %d — add it to your staff account to receive feedback notifications.",
		c.Sender().FirstName, c.Chat().ID,
	)

	if n.SiteURL == "" {
		return c.Send(message)
	}

	markup := telebot.ReplyMarkup{
		InlineKeyboard: [][]telebot.InlineButton{
			{
				telebot.InlineButton{
					Text: "Open CORE DEVS",
					URL:  n.SiteURL,
				},
			},
		},
	}
	return c.Send(message, &markup)
}

// handleStatus replies with the current inbox and vault counts.
func (n *Notifier) handleStatus(c telebot.Context) error {
	resources, err := n.store.Resources()
	if err != nil {
		return c.Send("Could not read the vault right now.")
	}
	feedback, err := n.store.Feedback()
	if err != nil {
		return c.Send("Could not read the feedback inbox right now.")
	}
	return c.Send(fmt.Sprintf("Vault: %d resources\nFeedback inbox: %d entries", len(resources), len(feedback)))
}

// FeedbackReceived pushes a new feedback entry to every staff account
// with a Telegram chat id on file. Send failures are logged, not fatal.
func (n *Notifier) FeedbackReceived(f *model.Feedback) {
	accounts, err := n.store.StaffAccounts()
	if err != nil {
		n.sugar.Errorw("notifier: failed to list staff accounts", "error", err)
		return
	}

	text := fmt.Sprintf("New %s feedback:\n%s", f.Type, f.Message)
	for _, account := range accounts {
		if account.TelegramChatID == 0 {
			continue
		}
		chat := &telebot.Chat{ID: account.TelegramChatID}
		if _, err := n.Bot.Send(chat, text); err != nil {
			n.sugar.Warnw("notifier: send failed", "username", account.Username, "error", err)
		}
	}
}

// Start starts the bot poller. Blocks; run in a goroutine.
func (n *Notifier) Start() {
	n.Bot.Start()
}
