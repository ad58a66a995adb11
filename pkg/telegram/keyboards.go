package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"github.com/GoodboyDm/bubble-tea-bot/pkg/flow"
	"github.com/GoodboyDm/bubble-tea-bot/pkg/report"
)

var reportCallbacks = map[report.Kind]string{
	report.Today:   TodayReportCmd,
	report.Week:    WeekReportCmd,
	report.Month:   MonthReportCmd,
	report.AllTime: AllTimeReportCmd,
}

var detailsSuffixes = map[report.Kind]string{
	report.Today:   DetailsToday,
	report.Week:    DetailsWeek,
	report.Month:   DetailsMonth,
	report.AllTime: DetailsAllTime,
}

// getMainKeyboard returns the landing menu; the admin entry only shows
// for admins.
func (b *Bot) getMainKeyboard(isAdmin bool) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.messages.Buttons.NewSale, flow.DataNewSale),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.messages.Buttons.TodayReport, TodayReportCmd),
		),
	}
	if isAdmin {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.messages.Buttons.Admin, AdminMenuCmd),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// getAdminKeyboard returns the report picker for admins.
func (b *Bot) getAdminKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.messages.Buttons.TodayReport, TodayReportCmd),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.messages.Buttons.WeekReport, WeekReportCmd),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.messages.Buttons.MonthReport, MonthReportCmd),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.messages.Buttons.AllTimeReport, AllTimeReportCmd),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.messages.Buttons.Back, BackToMainCmd),
		),
	)
}

// getFlowKeyboard renders a flow reply's actions, one button per row the
// way the original menus read.
func (b *Bot) getFlowKeyboard(reply flow.Reply, isAdmin bool) tgbotapi.InlineKeyboardMarkup {
	if reply.MainMenu {
		return b.getMainKeyboard(isAdmin)
	}
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(reply.Actions))
	for _, a := range reply.Actions {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(a.Label, a.Data),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// getReportKeyboard is shown under a report summary: details first, then
// either the admin picker or the clerk's main actions.
func (b *Bot) getReportKeyboard(kind report.Kind, isAdmin bool) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.messages.Buttons.Details, DetailsPrefix+detailsSuffixes[kind]),
		),
	}
	if kind == report.Today {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.messages.Buttons.NewSale, flow.DataNewSale),
		))
		if isAdmin {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(b.messages.Buttons.Admin, AdminMenuCmd),
			))
		}
		return tgbotapi.NewInlineKeyboardMarkup(rows...)
	}
	return tgbotapi.NewInlineKeyboardMarkup(append(rows, b.getAdminKeyboard().InlineKeyboard...)...)
}

// getDetailsKeyboard is shown under a breakdown: back to the summary it
// came from, plus the admin menu where it applies.
func (b *Bot) getDetailsKeyboard(kind report.Kind, isAdmin bool) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.messages.Buttons.Back, reportCallbacks[kind]),
		),
	}
	if isAdmin {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.messages.Buttons.Admin, AdminMenuCmd),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
