package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/nutritrack/nutritrack/internal/bot/state"
	"github.com/nutritrack/nutritrack/internal/domain"
	"github.com/nutritrack/nutritrack/internal/logger"
)

// PhotoHandler handles photo messages
type PhotoHandler struct {
	api          *tgbotapi.BotAPI
	deps         Dependencies
	stateManager state.StateManager
}

// NewPhotoHandler creates a new photo handler
func NewPhotoHandler(api *tgbotapi.BotAPI, deps Dependencies, stateManager state.StateManager) *PhotoHandler {
	return &PhotoHandler{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
	}
}

// Handle processes a photo message
func (h *PhotoHandler) Handle(ctx context.Context, message *tgbotapi.Message) error {
	if h.stateManager.GetUserState(message.From.ID) != state.WaitingForFood {
		msg := tgbotapi.NewMessage(message.Chat.ID, "Press \"🍽️ Log food\" and pick a meal first, then send the photo.")
		_, err := h.api.Send(msg)
		return err
	}

	slot, ok := h.stateManager.GetTempData(message.From.ID, state.TempMealSlot)
	if !ok {
		msg := tgbotapi.NewMessage(message.Chat.ID, "Press \"🍽️ Log food\" and pick a meal first, then send the photo.")
		_, err := h.api.Send(msg)
		return err
	}

	// The largest photo size is last
	photo := message.Photo[len(message.Photo)-1]
	file, err := h.api.GetFile(tgbotapi.FileConfig{FileID: photo.FileID})
	if err != nil {
		return fmt.Errorf("failed to get file: %w", err)
	}

	imageData, err := h.downloadPhoto(file.Link(h.api.Token))
	if err != nil {
		logger.Errorf("Failed to download photo: %v", err)
		msg := tgbotapi.NewMessage(message.Chat.ID, "I couldn't download that photo. Please try sending it again.")
		_, sendErr := h.api.Send(msg)
		return sendErr
	}

	return logEstimatedFood(ctx, h.api, h.deps, h.stateManager, message.Chat.ID, message.From.ID,
		domain.MealType(slot),
		func(ctx context.Context) ([]domain.FoodItem, error) {
			// Telegram photos are re-encoded as JPEG
			return h.deps.Estimator.EstimateFromImage(ctx, imageData, "image/jpeg")
		})
}

func (h *PhotoHandler) downloadPhoto(url string) ([]byte, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	return data, nil
}
