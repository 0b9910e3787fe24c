package tgbot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Nick-Wu5/ceeps/internal/config"
	"github.com/Nick-Wu5/ceeps/internal/domain"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

var ErrBadRequest = errors.New("unknown command, try /help")

type Bot struct {
	bot *tgbotapi.BotAPI
	log *logrus.Entry

	// cancel func to stop the bot
	cancel func()

	subs     *subscriptions
	commands *Commands
}

func New(league League, cfg config.TgBot, l *logrus.Logger) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramApiToken)
	if err != nil {
		return nil, fmt.Errorf("telegram api token: %w", err)
	}
	bot.Debug = cfg.Debug

	subs := newSubs()
	return &Bot{
		bot:      bot,
		log:      l.WithField("from", "tg_bot"),
		subs:     subs,
		commands: NewCommands(league, subs),
	}, nil
}

// Run polls for updates until ctx is done or Stop is called.
func (b *Bot) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	b.cancel = cancel

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.bot.GetUpdatesChan(u)
	defer b.bot.StopReceivingUpdates()

	b.log.WithField("bot", b.bot.Self.UserName).Info("bot started")
	for {
		select {
		case <-ctx.Done():
			return
		case update := <-updates:
			b.handleMessage(ctx, update)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil || !update.Message.IsCommand() {
		return
	}
	log := b.log.WithFields(logrus.Fields{
		"chat_id": update.Message.Chat.ID,
		"text":    update.Message.Text,
	})

	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	text, err := b.commands.RunCommand(ctx, update.Message.Chat.ID,
		update.Message.Command(), strings.TrimSpace(update.Message.CommandArguments()))
	if err != nil {
		log.WithError(err).Debug("command failed")
		text = err.Error()
	}
	msg.Text = text
	if _, err := b.bot.Send(msg); err != nil {
		log.WithError(err).Error("send error")
	}
}

func (b *Bot) Stop() {
	if b.cancel != nil {
		b.cancel()
	}
}

// GameSubmitted tells every subscribed chat about a new game.
func (b *Bot) GameSubmitted(game domain.Game) {
	text := formatGame(game)
	for _, chatID := range b.subs.ChatIDs() {
		if _, err := b.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
			b.log.WithError(err).WithField("chat_id", chatID).Error("notification failed")
		}
	}
}
