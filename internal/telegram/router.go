package telegram

import (
	"context"
	"strconv"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Rainbow1nTheDark/fencing-tg-alerts/internal/store"
)

// CoachSource yields the coach names offered on the live schedule.
// scraper.Client implements it.
type CoachSource interface {
	FetchCoaches(ctx context.Context) ([]string, error)
}

// Steps of the new-alert conversation.
const (
	stepDays  = "days"
	stepStart = "start_time"
	stepEnd   = "end_time"
)

// draft is the in-progress state of one chat's new-alert conversation.
// In-memory only; an unfinished conversation does not survive a restart.
type draft struct {
	step  string
	coach string
	days  map[string]bool
	start string
}

// Router wires Telegram updates to handlers and holds per-chat conversation state.
type Router struct {
	bot     *tgbotapi.BotAPI
	log     *zap.Logger
	repo    store.Repo
	coaches CoachSource

	// trigger fires an asynchronous matching pass; set by the app after the
	// pipeline is constructed. The reason is log-only.
	trigger func(reason string)

	drafts map[int64]*draft
	mu     sync.Mutex
}

// NewRouter creates a new Telegram router.
func NewRouter(bot *tgbotapi.BotAPI, log *zap.Logger, repo store.Repo, coaches CoachSource) *Router {
	return &Router{
		bot:     bot,
		log:     log,
		repo:    repo,
		coaches: coaches,
		trigger: func(string) {},
		drafts:  make(map[int64]*draft),
	}
}

// SetTrigger installs the on-demand matching-pass trigger.
func (r *Router) SetTrigger(fn func(reason string)) {
	if fn != nil {
		r.trigger = fn
	}
}

func (r *Router) getDraft(chatID int64) *draft {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.drafts[chatID]
}

func (r *Router) setDraft(chatID int64, d *draft) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drafts[chatID] = d
}

func (r *Router) clearDraft(chatID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.drafts, chatID)
}

// HandleUpdate routes a single update to the appropriate handler.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message != nil {
		msg := upd.Message
		chatID := msg.Chat.ID
		text := strings.TrimSpace(msg.Text)

		switch {
		case strings.HasPrefix(text, "/start"):
			r.handleStart(chatID)
		case strings.HasPrefix(text, "/myalerts"):
			r.handleMyAlerts(ctx, chatID, 0)
		case strings.HasPrefix(text, "/about"):
			r.sendText(chatID, aboutText)
		default:
			r.handleFreeForm(ctx, chatID, text)
		}
		return
	}

	if upd.CallbackQuery != nil {
		cb := upd.CallbackQuery
		data := cb.Data
		chatID := cb.Message.Chat.ID
		msgID := cb.Message.MessageID

		switch {
		case data == "menu:start":
			r.answerCallback(cb.ID, "")
			r.editMessage(chatID, msgID, startText, mainMenuKeyboard())
		case data == "menu:about":
			r.answerCallback(cb.ID, "")
			r.editMessage(chatID, msgID, aboutText, backToMenuKeyboard())
		case data == "menu:new":
			r.answerCallback(cb.ID, "")
			r.handleNewAlert(ctx, chatID, msgID)
		case data == "menu:list":
			r.answerCallback(cb.ID, "")
			r.handleMyAlerts(ctx, chatID, msgID)
		case strings.HasPrefix(data, "coach:"):
			r.answerCallback(cb.ID, "")
			r.handleCoachPicked(chatID, msgID, strings.TrimPrefix(data, "coach:"))
		case strings.HasPrefix(data, "day:"):
			r.handleDayToggled(chatID, msgID, cb.ID, strings.TrimPrefix(data, "day:"))
		case strings.HasPrefix(data, "del:"):
			id, err := strconv.ParseInt(strings.TrimPrefix(data, "del:"), 10, 64)
			if err != nil {
				r.answerCallback(cb.ID, "")
				return
			}
			r.handleDeleteAlert(ctx, chatID, msgID, cb.ID, id)
		case data == "cancel":
			r.answerCallback(cb.ID, "")
			r.clearDraft(chatID)
			r.editMessage(chatID, msgID, cancelledText, mainMenuKeyboard())
		default:
			// Unknown callback — ignore silently
			r.answerCallback(cb.ID, "")
		}
		return
	}
}

// SendMessage sends a plain text message to the given chat.
// This makes Router satisfy notify.Sender.
func (r *Router) SendMessage(chatID int64, text string) error {
	_, err := r.bot.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

// --- Generic helpers ---

func (r *Router) sendText(chatID int64, text string) {
	_, _ = r.bot.Send(tgbotapi.NewMessage(chatID, text))
}

func (r *Router) sendWithKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	_, _ = r.bot.Send(msg)
}

func (r *Router) editMessage(chatID int64, msgID int, text string, kb tgbotapi.InlineKeyboardMarkup) {
	if msgID == 0 {
		r.sendWithKeyboard(chatID, text, kb)
		return
	}
	_, _ = r.bot.Send(tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID, text, kb))
}

func (r *Router) answerCallback(id, text string) {
	_, _ = r.bot.Request(tgbotapi.NewCallback(id, text))
}

func (r *Router) alertCallback(id, text string) {
	_, _ = r.bot.Request(tgbotapi.NewCallbackWithAlert(id, text))
}
