package telegram

import (
	"testing"
	"time"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandArgs(t *testing.T) {
	assert.Nil(t, commandArgs(""))
	assert.Empty(t, commandArgs("/equipment"))
	assert.Equal(t, []string{"B001"}, commandArgs("/cancel B001"))
	assert.Equal(t,
		[]string{"HDMI", "Cable", "2026-09-14", "10:00", "12:00", "2"},
		commandArgs("/book HDMI Cable 2026-09-14 10:00 12:00 2"))
	// Repeated whitespace does not produce empty args.
	assert.Equal(t, []string{"B001"}, commandArgs("/return   B001"))
}

func TestRequesterFrom(t *testing.T) {
	t.Run("prefers the username", func(t *testing.T) {
		update := &models.Update{Message: &models.Message{
			From: &models.User{ID: 7, Username: "alice"},
			Chat: models.Chat{ID: 100},
		}}
		assert.Equal(t, "@alice", requesterFrom(update))
	})

	t.Run("falls back to the numeric user id", func(t *testing.T) {
		update := &models.Update{Message: &models.Message{
			From: &models.User{ID: 7},
			Chat: models.Chat{ID: 100},
		}}
		assert.Equal(t, "tg:7", requesterFrom(update))
	})

	t.Run("channel posts use the chat id", func(t *testing.T) {
		update := &models.Update{Message: &models.Message{
			Chat: models.Chat{ID: 100},
		}}
		assert.Equal(t, "tg:100", requesterFrom(update))
	})
}

func TestController_ParseWindow(t *testing.T) {
	t.Run("utc", func(t *testing.T) {
		c := &Controller{loc: time.UTC}
		start, end, err := c.parseWindow("2026-09-14", "10:00", "12:30")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2026, 9, 14, 12, 30, 0, 0, time.UTC), end)
	})

	t.Run("local wall time maps to the configured zone", func(t *testing.T) {
		jakarta := time.FixedZone("WIB", 7*3600)
		c := &Controller{loc: jakarta}
		start, _, err := c.parseWindow("2026-09-14", "10:00", "12:00")
		require.NoError(t, err)
		assert.Equal(t, 3, start.UTC().Hour(), "10:00 WIB is 03:00 UTC")
	})

	t.Run("rejects garbage", func(t *testing.T) {
		c := &Controller{loc: time.UTC}
		_, _, err := c.parseWindow("14.09.2026", "10:00", "12:00")
		assert.Error(t, err)

		_, _, err = c.parseWindow("2026-09-14", "10am", "12:00")
		assert.Error(t, err)
	})
}
