package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"equipment-booking/internal/dto/request"
	"equipment-booking/internal/dto/response"
	"equipment-booking/internal/usecase"
	"equipment-booking/pkg/utils"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const (
	checkUsage = "Usage: /check <equipment> <date> <from> <to>\nExample: /check Projector 2026-03-14 10:00 12:00"
	bookUsage  = "Usage: /book <equipment> <date> <from> <to> [quantity]\nExample: /book HDMI Cable 2026-03-14 10:00 12:00 2"
)

func (c *Controller) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	name := "there"
	if update.Message.From != nil && update.Message.From.FirstName != "" {
		name = update.Message.From.FirstName
	}

	text := fmt.Sprintf(
		"👋 Hi %s!\n\n"+
			"I manage the shared equipment pool. Check what is free, book it, "+
			"and mark it returned when you are done.\n\n"+
			"Main commands:\n"+
			"/equipment - List bookable equipment\n"+
			"/check - Check availability for a window\n"+
			"/book - Book equipment\n"+
			"/mybookings - Your active bookings\n"+
			"/help - Full command reference",
		name,
	)

	c.reply(ctx, b, update, text)
}

func (c *Controller) handleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	text := "📚 Command reference:\n\n" +
		"/equipment - List all bookable equipment\n\n" +
		"/check <equipment> <date> <from> <to>\n" +
		"e.g. /check Projector 2026-03-14 10:00 12:00\n\n" +
		"/book <equipment> <date> <from> <to> [quantity]\n" +
		"e.g. /book HDMI Cable 2026-03-14 10:00 12:00 2\n" +
		"Equipment can be given by name or by its number from /equipment.\n\n" +
		"/mybookings - Your active bookings\n" +
		"/allbookings - Everyone's active bookings\n\n" +
		"/cancel <booking-id> - Cancel one of your bookings\n" +
		"/return <booking-id> - Mark borrowed equipment as returned\n\n" +
		"Dates are YYYY-MM-DD, times are 24h HH:MM."

	c.reply(ctx, b, update, text)
}

func (c *Controller) handleEquipment(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	items, err := c.service.Equipment.List(ctx)
	if err != nil {
		c.log.Error("Failed to list equipment", zap.Error(err))
		c.reply(ctx, b, update, renderServiceError(err))
		return
	}

	c.reply(ctx, b, update, formatEquipmentList(items))
}

func (c *Controller) handleCheck(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	args := commandArgs(update.Message.Text)
	if len(args) < 4 {
		c.reply(ctx, b, update, checkUsage)
		return
	}

	name := strings.Join(args[:len(args)-3], " ")
	start, end, err := c.parseWindow(args[len(args)-3], args[len(args)-2], args[len(args)-1])
	if err != nil {
		c.reply(ctx, b, update, "❌ "+err.Error()+"\n\n"+checkUsage)
		return
	}

	eq, err := c.resolveEquipment(ctx, name)
	if err != nil {
		c.reply(ctx, b, update, renderServiceError(err))
		return
	}

	availability, err := c.service.Booking.CheckAvailability(ctx, eq.ID, start, end)
	if err != nil {
		c.reply(ctx, b, update, renderServiceError(err))
		return
	}

	c.reply(ctx, b, update, formatAvailability(availability, c.loc))
}

func (c *Controller) handleBook(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	args := commandArgs(update.Message.Text)
	if len(args) < 4 {
		c.reply(ctx, b, update, bookUsage)
		return
	}

	// A trailing integer is the quantity, everything else keeps its position.
	quantity := 1
	if len(args) >= 5 {
		if n, err := strconv.Atoi(args[len(args)-1]); err == nil {
			quantity = n
			args = args[:len(args)-1]
		}
	}
	if len(args) < 4 {
		c.reply(ctx, b, update, bookUsage)
		return
	}

	name := strings.Join(args[:len(args)-3], " ")
	start, end, err := c.parseWindow(args[len(args)-3], args[len(args)-2], args[len(args)-1])
	if err != nil {
		c.reply(ctx, b, update, "❌ "+err.Error()+"\n\n"+bookUsage)
		return
	}

	eq, err := c.resolveEquipment(ctx, name)
	if err != nil {
		c.reply(ctx, b, update, renderServiceError(err))
		return
	}

	req := &request.CreateBookingRequest{
		EquipmentID:    eq.ID,
		Requester:      requesterFrom(update),
		Contact:        fmt.Sprintf("telegram:%d", update.Message.Chat.ID),
		StartTime:      start.Format(time.RFC3339),
		EndTime:        end.Format(time.RFC3339),
		Quantity:       quantity,
		IdempotencyKey: utils.GenerateIdempotencyKey(),
	}

	booking, err := c.service.Booking.CreateBooking(ctx, req)
	if usecase.KindOf(err) == usecase.KindUnavailable {
		// The key makes one blind retry safe.
		booking, err = c.service.Booking.CreateBooking(ctx, req)
	}
	if err != nil {
		c.reply(ctx, b, update, renderServiceError(err))
		return
	}

	c.reply(ctx, b, update, "✅ Booked!\n\n"+formatBooking(booking, c.loc))
}

func (c *Controller) handleMyBookings(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	bookings, err := c.service.Booking.ListBookings(ctx, requesterFrom(update), false)
	if err != nil {
		c.reply(ctx, b, update, renderServiceError(err))
		return
	}

	if len(bookings) == 0 {
		c.reply(ctx, b, update, "🗓 You have no active bookings. Book something with /book!")
		return
	}

	c.reply(ctx, b, update, "🗓 Your active bookings:\n\n"+formatBookingList(bookings, c.loc))
}

func (c *Controller) handleAllBookings(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	bookings, err := c.service.Booking.ListBookings(ctx, "", false)
	if err != nil {
		c.reply(ctx, b, update, renderServiceError(err))
		return
	}

	if len(bookings) == 0 {
		c.reply(ctx, b, update, "📋 No active bookings, everything is free.")
		return
	}

	c.reply(ctx, b, update, "📋 All active bookings:\n\n"+formatBookingList(bookings, c.loc))
}

func (c *Controller) handleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	args := commandArgs(update.Message.Text)
	if len(args) != 1 {
		c.reply(ctx, b, update, "Usage: /cancel <booking-id>\nFind the ID with /mybookings.")
		return
	}

	booking, err := c.service.Booking.CancelBooking(ctx, args[0], requesterFrom(update), false)
	if err != nil {
		c.reply(ctx, b, update, renderServiceError(err))
		return
	}

	c.reply(ctx, b, update, fmt.Sprintf("❌ Booking %s cancelled. The slot is free again.", booking.ID))
}

func (c *Controller) handleReturn(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	args := commandArgs(update.Message.Text)
	if len(args) != 1 {
		c.reply(ctx, b, update, "Usage: /return <booking-id>\nFind the ID with /mybookings.")
		return
	}

	booking, err := c.service.Booking.ReturnEquipment(ctx, args[0])
	if err != nil {
		c.reply(ctx, b, update, renderServiceError(err))
		return
	}

	c.reply(ctx, b, update, fmt.Sprintf("↩️ Booking %s closed, thanks for returning the %s!",
		booking.ID, booking.EquipmentName))
}

// ==================== PARSING HELPERS ====================

func commandArgs(text string) []string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}
	return fields[1:]
}

func requesterFrom(update *models.Update) string {
	from := update.Message.From
	if from == nil {
		return fmt.Sprintf("tg:%d", update.Message.Chat.ID)
	}
	if from.Username != "" {
		return "@" + from.Username
	}
	return fmt.Sprintf("tg:%d", from.ID)
}

// parseWindow builds a same-day window in the bot's configured timezone.
func (c *Controller) parseWindow(date, from, to string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation("2006-01-02 15:04", date+" "+from, c.loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("could not read %q %q as date and time", date, from)
	}

	end, err := time.ParseInLocation("2006-01-02 15:04", date+" "+to, c.loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("could not read %q %q as date and time", date, to)
	}

	return start, end, nil
}

// resolveEquipment accepts either the catalog number or a name.
func (c *Controller) resolveEquipment(ctx context.Context, name string) (*response.EquipmentResponse, error) {
	if id, err := strconv.ParseInt(name, 10, 64); err == nil {
		return c.service.Equipment.GetByID(ctx, id)
	}
	return c.service.Equipment.GetByName(ctx, name)
}
