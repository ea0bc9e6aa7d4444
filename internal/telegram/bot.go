package telegram

import (
	"context"
	"fmt"
	"time"

	"equipment-booking/internal/usecase"
	"equipment-booking/pkg/utils"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Controller drives the booking engine from Telegram chat commands. It
// shares the usecase layer with the HTTP API, nothing here talks to the
// store directly.
type Controller struct {
	bot     *bot.Bot
	service *usecase.Service
	loc     *time.Location
	log     *zap.Logger
}

func New(config *utils.Config, service *usecase.Service, log *zap.Logger) (*Controller, error) {
	loc, err := time.LoadLocation(config.Telegram.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", config.Telegram.Timezone, err)
	}

	b, err := bot.New(config.Telegram.Token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &Controller{
		bot:     b,
		service: service,
		loc:     loc,
		log:     log.With(zap.String("controller", "telegram")),
	}, nil
}

// RegisterHandlers wires every chat command. Commands taking arguments are
// matched by prefix, the rest exactly. No registered command is a prefix of
// another, the matcher picks handlers in map order.
func (c *Controller) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/equipment", bot.MatchTypeExact, c.handleEquipment)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/mybookings", bot.MatchTypeExact, c.handleMyBookings)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/allbookings", bot.MatchTypeExact, c.handleAllBookings)

	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/check", bot.MatchTypePrefix, c.handleCheck)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/book", bot.MatchTypePrefix, c.handleBook)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypePrefix, c.handleCancel)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/return", bot.MatchTypePrefix, c.handleReturn)

	return c.setCommands(ctx)
}

func (c *Controller) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Start and see what the bot does"},
		{Command: "help", Description: "❓ Command reference with examples"},
		{Command: "equipment", Description: "📦 List bookable equipment"},
		{Command: "check", Description: "🔍 Check availability for a time window"},
		{Command: "book", Description: "📅 Book equipment"},
		{Command: "mybookings", Description: "🗓 My active bookings"},
		{Command: "allbookings", Description: "📋 Everyone's active bookings"},
		{Command: "cancel", Description: "❌ Cancel one of my bookings"},
		{Command: "return", Description: "↩️ Return borrowed equipment"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.log.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.log.Info("Bot commands menu set")
	return nil
}

// Start blocks polling for updates until ctx is cancelled.
func (c *Controller) Start(ctx context.Context) {
	c.log.Info("Starting telegram bot...")
	c.bot.Start(ctx)
}

func (c *Controller) reply(ctx context.Context, b *bot.Bot, update *models.Update, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   text,
	})
	if err != nil {
		c.log.Error("Failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", update.Message.Chat.ID),
		)
	}
}
