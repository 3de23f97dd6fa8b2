package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/nutritrack/nutritrack/internal/bot/menus"
	"github.com/nutritrack/nutritrack/internal/bot/state"
	"github.com/nutritrack/nutritrack/internal/logger"
)

// CommandHandler handles bot commands
type CommandHandler struct {
	api          *tgbotapi.BotAPI
	deps         Dependencies
	stateManager state.StateManager
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(api *tgbotapi.BotAPI, deps Dependencies, stateManager state.StateManager) *CommandHandler {
	return &CommandHandler{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
	}
}

// Handle processes a command message
func (h *CommandHandler) Handle(ctx context.Context, message *tgbotapi.Message) error {
	logger.Infof("Handling command %s from user %d", message.Command(), message.From.ID)

	switch message.Command() {
	case "start":
		h.stateManager.SetUserState(message.From.ID, state.None)
		h.stateManager.ClearTempData(message.From.ID)
		return menus.SendMainMenu(h.api, message.Chat.ID)
	case "today":
		return menus.SendTodayOverview(h.api, message.Chat.ID, h.deps.NutritionSvc.TodaysLog())
	case "help":
		return h.handleHelp(message.Chat.ID)
	default:
		return h.handleUnknownCommand(message.Chat.ID)
	}
}

// handleHelp handles the /help command
func (h *CommandHandler) handleHelp(chatID int64) error {
	text := `Available commands:
/start - Show the main menu
/today - Show today's food log and totals
/help - Show this message

How to log a meal:
1. Press "🍽️ Log food" and pick a meal
2. Send a text description ("2 eggs and toast") or a photo of the dish
3. I will estimate the nutrients and add the items to today's log

Weight and sleep are logged from their menus. Logging twice on the
same day replaces the earlier entry.`

	msg := tgbotapi.NewMessage(chatID, text)
	_, err := h.api.Send(msg)
	return err
}

// handleUnknownCommand handles unknown commands
func (h *CommandHandler) handleUnknownCommand(chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, "Unknown command. Use /help to see the available commands.")
	_, err := h.api.Send(msg)
	return err
}
