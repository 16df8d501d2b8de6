package telegram

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/Rainbow1nTheDark/fencing-tg-alerts/internal/domain"
)

var timeRe = regexp.MustCompile(`^\d{1,2}:\d{2}$`)

func (r *Router) handleStart(chatID int64) {
	r.clearDraft(chatID)
	r.sendWithKeyboard(chatID, startText, mainMenuKeyboard())
}

// --- New-alert conversation ---

// handleNewAlert opens the coach picker. An empty coach list blocks creation:
// without live names a saved alert could never match anything.
func (r *Router) handleNewAlert(ctx context.Context, chatID int64, msgID int) {
	coaches, err := r.coaches.FetchCoaches(ctx)
	if err != nil {
		r.log.Warn("coach list fetch failed", zap.Error(err), zap.Int64("chat_id", chatID))
	}
	if len(coaches) == 0 {
		r.log.Warn("blocking alert creation: coach list is empty", zap.Int64("chat_id", chatID))
		r.editMessage(chatID, msgID, coachUnavailableText, backToMenuKeyboard())
		return
	}
	r.editMessage(chatID, msgID, askCoachText, coachKeyboard(coaches))
}

func (r *Router) handleCoachPicked(chatID int64, msgID int, coach string) {
	r.setDraft(chatID, &draft{
		step:  stepDays,
		coach: coach,
		days:  make(map[string]bool),
	})
	text := fmt.Sprintf("Great, you've selected %s.\n\nNow, please select your preferred days.", coach)
	r.editMessage(chatID, msgID, text, daysKeyboard(nil))
}

func (r *Router) handleDayToggled(chatID int64, msgID int, cbID, action string) {
	d := r.getDraft(chatID)
	if d == nil || d.step != stepDays {
		r.answerCallback(cbID, "")
		return
	}

	if action == "confirm" {
		if len(selectedDays(d)) == 0 {
			r.alertCallback(cbID, "Please select at least one day.")
			return
		}
		r.answerCallback(cbID, "")
		d.step = stepStart
		r.setDraft(chatID, d)
		r.editMessage(chatID, msgID, askStartText, backToMenuKeyboard())
		return
	}

	r.answerCallback(cbID, "")
	d.days[action] = !d.days[action]
	r.setDraft(chatID, d)
	r.editMessage(chatID, msgID,
		fmt.Sprintf("Great, you've selected %s.\n\nNow, please select your preferred days.", d.coach),
		daysKeyboard(d.days))
}

// handleFreeForm consumes the start/end time messages of an in-progress
// conversation. Text outside a conversation is ignored.
func (r *Router) handleFreeForm(ctx context.Context, chatID int64, text string) {
	d := r.getDraft(chatID)
	if d == nil {
		return
	}

	switch d.step {
	case stepStart:
		if !timeRe.MatchString(text) {
			r.sendText(chatID, badTimeText)
			return
		}
		d.start = text
		d.step = stepEnd
		r.setDraft(chatID, d)
		r.sendText(chatID, fmt.Sprintf(askEndFmt, text))

	case stepEnd:
		if !timeRe.MatchString(text) {
			r.sendText(chatID, badTimeText)
			return
		}
		timeRange := d.start + "-" + text
		if _, _, err := domain.ParseTimeRange(timeRange); err != nil {
			r.sendText(chatID, badRangeText)
			return
		}
		r.saveAlert(ctx, chatID, d, timeRange)
	}
}

func (r *Router) saveAlert(ctx context.Context, chatID int64, d *draft, timeRange string) {
	days, err := domain.ParseDays(joinSelected(d))
	if err != nil {
		r.log.Error("draft days invalid", zap.Error(err), zap.Int64("chat_id", chatID))
		r.clearDraft(chatID)
		r.sendWithKeyboard(chatID, "Something went wrong, please start over.", mainMenuKeyboard())
		return
	}

	alert := domain.Alert{
		ChatID:    chatID,
		Coach:     d.coach,
		Days:      days,
		TimeRange: timeRange,
	}
	if _, err := r.repo.AddAlert(ctx, &alert); err != nil {
		r.log.Error("save alert failed", zap.Error(err), zap.Int64("chat_id", chatID))
		r.sendWithKeyboard(chatID, "Could not save your alert. Please try again later.", mainMenuKeyboard())
		return
	}
	r.clearDraft(chatID)
	r.sendWithKeyboard(chatID, alertCreatedText(alert), mainMenuKeyboard())

	// Immediate, non-blocking check so the user hears about an already-open
	// slot without waiting for the next scheduled pass.
	r.trigger(fmt.Sprintf("new alert from user %d", chatID))
}

// --- My alerts ---

func (r *Router) handleMyAlerts(ctx context.Context, chatID int64, msgID int) {
	alerts, err := r.repo.ListAlerts(ctx, chatID)
	if err != nil {
		r.log.Error("list alerts failed", zap.Error(err), zap.Int64("chat_id", chatID))
		r.editMessage(chatID, msgID, "Error reading your alerts.", backToMenuKeyboard())
		return
	}
	text := "Your active alerts (tap to delete):"
	if len(alerts) == 0 {
		text = "You have no active alerts."
	}
	r.editMessage(chatID, msgID, text, alertListKeyboard(alerts))
}

func (r *Router) handleDeleteAlert(ctx context.Context, chatID int64, msgID int, cbID string, id int64) {
	if err := r.repo.DeleteAlert(ctx, id); err != nil {
		r.log.Error("delete alert failed", zap.Error(err), zap.Int64("alert_id", id))
		r.alertCallback(cbID, "Could not delete the alert.")
		return
	}
	r.alertCallback(cbID, "Alert deleted!")
	r.handleMyAlerts(ctx, chatID, msgID)
}

// --- Draft helpers ---

func selectedDays(d *draft) []string {
	var days []string
	for _, day := range domain.Weekdays {
		if d.days[day] {
			days = append(days, day)
		}
	}
	return days
}

func joinSelected(d *draft) string {
	return strings.Join(selectedDays(d), ",")
}
