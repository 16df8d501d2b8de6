package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Rainbow1nTheDark/fencing-tg-alerts/internal/domain"
)

const (
	startText = "Welcome to the Fencing Class Alert Bot!\n\n" +
		"I can notify you when a private lesson slot opens up. Choose an option to get started:"

	aboutText = "--- About This Bot ---\n\n" +
		"This bot helps you find available private fencing lessons by automatically checking the public calendar.\n\n" +
		"1. Create an alert for your preferred coach, days, and time range.\n" +
		"2. The bot checks the schedule every hour (and once immediately after you create an alert).\n" +
		"3. If a class opens up that matches your criteria, you'll get a message instantly!"

	coachUnavailableText = "Sorry, I couldn't fetch the list of coaches right now. " +
		"This could be a temporary issue with the website. Please try again later."

	askCoachText = "Let's set up a new alert. First, please choose your preferred coach:"
	askStartText = "Perfect. Now, what is the earliest time you're available? (e.g., 16:00)"
	askEndFmt    = "Okay, starting from %s. What is the latest time you're available? (e.g., 19:00)"

	badTimeText  = "Invalid format. Please use HH:MM (e.g., 09:00 or 17:30)."
	badRangeText = "The latest time must not be earlier than the earliest. Please enter the latest time again."

	cancelledText = "Action cancelled."
)

func mainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Create a New Alert", "menu:new"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📋 My Alerts", "menu:list"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("ℹ️ About This Bot", "menu:about"),
		),
	)
}

func backToMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Back to Main Menu", "menu:start"),
		),
	)
}

func coachKeyboard(coaches []string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, coach := range coaches {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(coach, "coach:"+coach),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⬅️ Cancel", "cancel"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// daysKeyboard renders the weekday multi-select, two buttons per row, with
// checkmarks on selected days.
func daysKeyboard(selected map[string]bool) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, day := range domain.Weekdays {
		label := day
		if selected[day] {
			label = "✅ " + day
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, "day:"+day))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("➡️ Confirm and Continue ➡️", "day:confirm"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func alertListKeyboard(alerts []domain.Alert) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, a := range alerts {
		label := fmt.Sprintf("❌ %s | %s | %s", a.Coach, a.Days.Short(), a.TimeRange)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("del:%d", a.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⬅️ Back to Main Menu", "menu:start"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func alertCreatedText(a domain.Alert) string {
	return fmt.Sprintf(
		"✅ Alert created!\n\n"+
			"  Coach: %s\n"+
			"  Days: %s\n"+
			"  Time range: %s\n\n"+
			"I'm performing an initial check now. If any classes match your criteria, "+
			"you'll get a separate notification shortly.",
		a.Coach, a.Days.String(), a.TimeRange,
	)
}
