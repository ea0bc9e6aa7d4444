package telegram

import (
	"fmt"
	"strings"
	"time"

	"equipment-booking/internal/dto/response"
	"equipment-booking/internal/usecase"
)

// Telegram rejects messages over 4096 chars, long lists get truncated.
const maxListEntries = 25

const (
	dayTimeLayout = "2006-01-02 15:04"
	timeLayout    = "15:04"
)

func formatEquipmentList(items []response.EquipmentResponse) string {
	if len(items) == 0 {
		return "📦 The catalog is empty."
	}

	var sb strings.Builder
	sb.WriteString("📦 Bookable equipment:\n\n")
	for _, it := range items {
		fmt.Fprintf(&sb, "%d. %s [%s] x%d\n", it.ID, it.Name, it.Category, it.TotalQuantity)
	}
	sb.WriteString("\nCheck a window with /check, book with /book.")
	return sb.String()
}

func formatAvailability(av *response.AvailabilityResponse, loc *time.Location) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🔍 %s, %s\n\n", av.EquipmentName, formatWindow(av.StartTime, av.EndTime, loc))

	if av.AvailableQuantity > 0 {
		fmt.Fprintf(&sb, "✅ %d of %d free", av.AvailableQuantity, av.TotalQuantity)
	} else {
		sb.WriteString("❌ Fully booked in that window")
		if av.NextAvailableAt != nil {
			fmt.Fprintf(&sb, ", frees up at %s", av.NextAvailableAt.In(loc).Format(dayTimeLayout))
		}
	}

	if len(av.Conflicts) > 0 {
		sb.WriteString("\n\nOverlapping bookings:\n")
		for i, bk := range av.Conflicts {
			if i == maxListEntries {
				fmt.Fprintf(&sb, "...and %d more\n", len(av.Conflicts)-maxListEntries)
				break
			}
			sb.WriteString(formatBookingLine(bk, loc) + "\n")
		}
	}

	return sb.String()
}

func formatBooking(bk *response.BookingResponse, loc *time.Location) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🎫 %s\n", bk.ID)
	fmt.Fprintf(&sb, "📦 %s x%d\n", bk.EquipmentName, bk.Quantity)
	fmt.Fprintf(&sb, "📅 %s\n", formatWindow(bk.StartTime, bk.EndTime, loc))
	fmt.Fprintf(&sb, "👤 %s\n", bk.Requester)
	fmt.Fprintf(&sb, "Status: %s", bk.Status)
	return sb.String()
}

func formatBookingList(bookings []response.BookingResponse, loc *time.Location) string {
	var sb strings.Builder
	for i, bk := range bookings {
		if i == maxListEntries {
			fmt.Fprintf(&sb, "...and %d more\n", len(bookings)-maxListEntries)
			break
		}
		sb.WriteString(formatBookingLine(bk, loc) + "\n")
	}
	return sb.String()
}

func formatBookingLine(bk response.BookingResponse, loc *time.Location) string {
	return fmt.Sprintf("%s  %s x%d  %s  (%s)",
		bk.ID, bk.EquipmentName, bk.Quantity, formatWindow(bk.StartTime, bk.EndTime, loc), bk.Requester)
}

// formatWindow prints the end as bare time when the window stays within one
// local day.
func formatWindow(start, end time.Time, loc *time.Location) string {
	s, e := start.In(loc), end.In(loc)
	if s.Year() == e.Year() && s.YearDay() == e.YearDay() {
		return s.Format(dayTimeLayout) + "-" + e.Format(timeLayout)
	}
	return s.Format(dayTimeLayout) + " to " + e.Format(dayTimeLayout)
}

func renderServiceError(err error) string {
	switch usecase.KindOf(err) {
	case usecase.KindNotFound:
		return "❌ " + err.Error() + "\nSee the catalog with /equipment."
	case usecase.KindConflict:
		return "❌ " + err.Error() + "\nTry /check for a window that works."
	case usecase.KindForbidden:
		return "🚫 " + err.Error()
	case usecase.KindInvalidWindow, usecase.KindInvalidState, usecase.KindInvalidInput:
		return "❌ " + err.Error()
	case usecase.KindUnavailable:
		return "⚠️ The booking service is temporarily unavailable, please try again in a moment."
	default:
		return "⚠️ Something went wrong, please try again."
	}
}
