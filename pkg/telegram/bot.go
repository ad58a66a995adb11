// Package telegram is the transport shim: it receives updates, routes
// them into the selection flow and the reporter, and renders their
// replies as messages with inline keyboards.
package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"go.uber.org/zap"

	"github.com/GoodboyDm/bubble-tea-bot/pkg/auth"
	"github.com/GoodboyDm/bubble-tea-bot/pkg/config"
	"github.com/GoodboyDm/bubble-tea-bot/pkg/flow"
	"github.com/GoodboyDm/bubble-tea-bot/pkg/report"
)

type Bot struct {
	bot      *tgbotapi.BotAPI
	machine  *flow.Machine
	reporter *report.Reporter
	policy   *auth.Policy
	messages config.Messages
	log      *zap.SugaredLogger
}

func NewBot(bot *tgbotapi.BotAPI, machine *flow.Machine, reporter *report.Reporter, policy *auth.Policy, messages config.Messages, log *zap.SugaredLogger) *Bot {
	return &Bot{
		bot:      bot,
		machine:  machine,
		reporter: reporter,
		policy:   policy,
		messages: messages,
		log:      log,
	}
}

func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates, err := b.bot.GetUpdatesChan(u)
	if err != nil {
		return err
	}

	for update := range updates {
		if update.Message != nil {
			if err := b.handleMessageCommand(update.Message); err != nil {
				b.log.Errorw("handling command", "chat", update.Message.Chat.ID, "err", err)
			}
		} else if update.CallbackQuery != nil {
			if err := b.handleCallbackCommand(update.CallbackQuery); err != nil {
				b.log.Errorw("handling callback query", "data", update.CallbackQuery.Data, "err", err)
			}
		}
	}
	return nil
}

func (b *Bot) isAdmin(userID int) bool {
	return b.policy.IsAdmin(int64(userID))
}
