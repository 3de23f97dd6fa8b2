package menus

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/nutritrack/nutritrack/internal/bot/keyboards"
	"github.com/nutritrack/nutritrack/internal/domain"
	"github.com/nutritrack/nutritrack/internal/services"
)

// SendMainMenu sends the main menu to a chat
func SendMainMenu(api *tgbotapi.BotAPI, chatID int64) error {
	text := `🥗 *NutriTrack* — your personal nutrition, weight and sleep tracker

🍽️ Log meals by text or photo, and I will estimate calories, protein, carbs and fats
⚖️ Track your weight and progress toward your goal
😴 Track your sleep and average duration

Choose an action:`

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = keyboards.MainMenu()
	_, err := api.Send(msg)
	return err
}

// SendTodayOverview renders today's log with per-meal entries and totals,
// with edit/delete buttons for each item.
func SendTodayOverview(api *tgbotapi.BotAPI, chatID int64, log domain.DailyLog) error {
	var b strings.Builder
	fmt.Fprintf(&b, "📋 Today (%s)\n\n", log.Date)

	empty := true
	for _, mt := range domain.MealTypes() {
		items := log.Meals[mt]
		if len(items) == 0 {
			continue
		}
		empty = false
		fmt.Fprintf(&b, "%s:\n", mt)
		for _, item := range items {
			fmt.Fprintf(&b, "  • %s — %.0f kcal (P %.1fg / C %.1fg / F %.1fg)\n",
				item.Name, item.Calories, item.Protein, item.Carbs, item.Fats)
		}
	}
	if empty {
		b.WriteString("Nothing logged yet today.\n")
	}

	fmt.Fprintf(&b, "\nTotals: %.0f kcal | protein %.1fg | carbs %.1fg | fats %.1fg",
		log.Totals.Calories, log.Totals.Protein, log.Totals.Carbs, log.Totals.Fats)

	msg := tgbotapi.NewMessage(chatID, b.String())
	msg.ReplyMarkup = keyboards.FoodItemActions(log)
	_, err := api.Send(msg)
	return err
}

// SendHistory renders the most recent daily logs with their totals.
func SendHistory(api *tgbotapi.BotAPI, chatID int64, logs []domain.DailyLog) error {
	const maxDays = 14

	var b strings.Builder
	b.WriteString("📖 History\n\n")
	if len(logs) == 0 {
		b.WriteString("No days logged yet.")
	}
	for i, log := range logs {
		if i == maxDays {
			fmt.Fprintf(&b, "… and %d more days\n", len(logs)-maxDays)
			break
		}
		fmt.Fprintf(&b, "%s — %.0f kcal (P %.1fg / C %.1fg / F %.1fg)\n",
			log.Date, log.Totals.Calories, log.Totals.Protein, log.Totals.Carbs, log.Totals.Fats)
	}

	msg := tgbotapi.NewMessage(chatID, b.String())
	msg.ReplyMarkup = keyboards.MainMenu()
	_, err := api.Send(msg)
	return err
}

// SendWeightMenu renders the weight log, the goal progress and the actions.
func SendWeightMenu(api *tgbotapi.BotAPI, chatID int64, entries []domain.WeightEntry, goal *domain.WeightGoal) error {
	const maxEntries = 10

	var b strings.Builder
	b.WriteString("⚖️ Weight\n\n")

	if len(entries) > 0 {
		fmt.Fprintf(&b, "Current: %.1f kg (%s)\n", entries[0].Weight, entries[0].Date)
	} else {
		b.WriteString("No weight logged yet.\n")
	}

	if goal != nil {
		fmt.Fprintf(&b, "Goal: %.1f → %.1f kg (since %s)\n",
			goal.StartingWeight, goal.TargetWeight, goal.StartDate)
		if len(entries) > 0 {
			progress := services.GoalProgress(*goal, entries[0].Weight)
			fmt.Fprintf(&b, "Progress: %.0f%%\n", progress)
		}
	}

	if len(entries) > 0 {
		b.WriteString("\nLog:\n")
		for i, e := range entries {
			if i == maxEntries {
				fmt.Fprintf(&b, "… and %d more entries\n", len(entries)-maxEntries)
				break
			}
			fmt.Fprintf(&b, "  %s — %.1f kg\n", e.Date, e.Weight)
		}
	}

	msg := tgbotapi.NewMessage(chatID, b.String())
	msg.ReplyMarkup = keyboards.WeightMenu(len(entries) > 0)
	_, err := api.Send(msg)
	return err
}

// SendSleepMenu renders the sleep log with the all-time average duration.
func SendSleepMenu(api *tgbotapi.BotAPI, chatID int64, entries []domain.SleepEntry, average float64) error {
	const maxEntries = 10

	var b strings.Builder
	b.WriteString("😴 Sleep\n\n")

	if len(entries) == 0 {
		b.WriteString("No sleep logged yet.\n")
	} else {
		fmt.Fprintf(&b, "Average sleep: %.1f h\n\nLog:\n", average)
		for i, e := range entries {
			if i == maxEntries {
				fmt.Fprintf(&b, "… and %d more entries\n", len(entries)-maxEntries)
				break
			}
			fmt.Fprintf(&b, "  %s — %s → %s (%.1f h)\n", e.Date, e.BedTime, e.WakeTime, e.Duration)
		}
	}

	msg := tgbotapi.NewMessage(chatID, b.String())
	msg.ReplyMarkup = keyboards.SleepMenu(len(entries) > 0)
	_, err := api.Send(msg)
	return err
}
