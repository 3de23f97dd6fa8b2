package keyboards

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/nutritrack/nutritrack/internal/domain"
)

// MainMenu creates the main menu keyboard
func MainMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🍽️ Log food", "log_food"),
			tgbotapi.NewInlineKeyboardButtonData("📋 Today", "today"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⚖️ Weight", "weight"),
			tgbotapi.NewInlineKeyboardButtonData("😴 Sleep", "sleep"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📖 History", "history"),
		),
	)
}

// MealSlotMenu creates the meal slot picker keyboard
func MealSlotMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🌅 Breakfast", "meal:Breakfast"),
			tgbotapi.NewInlineKeyboardButtonData("☀️ Lunch", "meal:Lunch"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🌙 Dinner", "meal:Dinner"),
			tgbotapi.NewInlineKeyboardButtonData("🍿 Snacks", "meal:Snacks"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", "main_menu"),
		),
	)
}

// WeightMenu creates the weight tracker keyboard
func WeightMenu(hasEntries bool) tgbotapi.InlineKeyboardMarkup {
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Log weight", "log_weight"),
			tgbotapi.NewInlineKeyboardButtonData("🎯 Set goal", "set_goal"),
		),
	)

	if hasEntries {
		keyboard.InlineKeyboard = append(keyboard.InlineKeyboard,
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🗑️ Delete entry", "delete_weight_menu"),
			),
		)
	}

	keyboard.InlineKeyboard = append(keyboard.InlineKeyboard,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", "main_menu"),
		),
	)
	return keyboard
}

// SleepMenu creates the sleep tracker keyboard
func SleepMenu(hasEntries bool) tgbotapi.InlineKeyboardMarkup {
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Log sleep", "log_sleep"),
		),
	)

	if hasEntries {
		keyboard.InlineKeyboard = append(keyboard.InlineKeyboard,
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🗑️ Delete entry", "delete_sleep_menu"),
			),
		)
	}

	keyboard.InlineKeyboard = append(keyboard.InlineKeyboard,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", "main_menu"),
		),
	)
	return keyboard
}

// FoodItemActions creates edit/delete buttons for each item of today's log
func FoodItemActions(log domain.DailyLog) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, mt := range domain.MealTypes() {
		for _, item := range log.Meals[mt] {
			name := item.Name
			if len(name) > 24 {
				name = name[:24] + "…"
			}
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("✏️ "+name, "edit_food:"+string(mt)+":"+item.ID),
				tgbotapi.NewInlineKeyboardButtonData("🗑️", "del_food:"+string(mt)+":"+item.ID),
			))
		}
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🍽️ Log food", "log_food"),
		tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", "main_menu"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// DeleteEntryMenu creates one delete button per date
func DeleteEntryMenu(prefix string, dates []string, back string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, date := range dates {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑️ "+date, prefix+":"+date),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("◀️ Back", back),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
