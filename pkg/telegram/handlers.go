package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"github.com/GoodboyDm/bubble-tea-bot/pkg/flow"
	"github.com/GoodboyDm/bubble-tea-bot/pkg/report"
)

var detailsKinds = map[string]report.Kind{
	DetailsToday:   report.Today,
	DetailsWeek:    report.Week,
	DetailsMonth:   report.Month,
	DetailsAllTime: report.AllTime,
}

func (b *Bot) handleMessageCommand(message *tgbotapi.Message) error {
	switch message.Text {
	case StartCmd:
		return b.handleStartTxt(message)
	case ReportCmd:
		return b.sendReport(message.Chat.ID, message.From.ID, report.Today)
	case WeekCmd:
		return b.sendAdminReport(message, report.Week)
	case MonthCmd:
		return b.sendAdminReport(message, report.Month)
	case AllTimeCmd:
		return b.sendAdminReport(message, report.AllTime)
	case AdminCmd:
		if !b.isAdmin(message.From.ID) {
			return b.sendText(message.Chat.ID, b.messages.Responses.AdminOnly)
		}
		msg := tgbotapi.NewMessage(message.Chat.ID, b.messages.Responses.AdminMenu)
		msg.ReplyMarkup = b.getAdminKeyboard()
		_, err := b.bot.Send(msg)
		return err
	default:
		return b.handleUnknownCmd(message)
	}
}

func (b *Bot) handleCallbackCommand(callback *tgbotapi.CallbackQuery) error {
	userID := callback.From.ID
	data := callback.Data

	switch {
	case data == flow.DataNewSale:
		return b.answerFlow(callback, b.machine.StartSale(int64(userID)), nil)
	case data == flow.DataCancel:
		return b.answerFlow(callback, b.machine.Cancel(int64(userID)), nil)
	case data == flow.DataBack:
		reply, err := b.machine.Back(int64(userID))
		return b.answerFlow(callback, reply, err)
	case strings.HasPrefix(data, flow.CategoryPrefix):
		reply, err := b.machine.ChooseCategory(int64(userID), strings.TrimPrefix(data, flow.CategoryPrefix))
		return b.answerFlow(callback, reply, err)
	case strings.HasPrefix(data, flow.ItemPrefix):
		reply, err := b.machine.ChooseItem(int64(userID), strings.TrimPrefix(data, flow.ItemPrefix))
		return b.answerFlow(callback, reply, err)
	case strings.HasPrefix(data, flow.VariantPrefix):
		reply, err := b.machine.ChooseVariant(int64(userID), strings.TrimPrefix(data, flow.VariantPrefix))
		return b.answerFlow(callback, reply, err)
	case strings.HasPrefix(data, flow.PayPrefix):
		reply, err := b.machine.ChoosePayment(context.Background(), int64(userID), strings.TrimPrefix(data, flow.PayPrefix))
		return b.answerFlow(callback, reply, err)
	case data == TodayReportCmd:
		return b.editReport(callback, report.Today)
	case data == WeekReportCmd, data == MonthReportCmd, data == AllTimeReportCmd:
		return b.editAdminReport(callback, kindForCallback(data))
	case data == AdminMenuCmd:
		if !b.isAdmin(userID) {
			return b.rejectCallback(callback)
		}
		return b.editWithKeyboard(callback, b.messages.Responses.AdminMenu, b.getAdminKeyboard())
	case data == BackToMainCmd:
		return b.editWithKeyboard(callback, b.messages.Responses.Start, b.getMainKeyboard(b.isAdmin(userID)))
	case strings.HasPrefix(data, DetailsPrefix):
		return b.editDetails(callback, strings.TrimPrefix(data, DetailsPrefix))
	default:
		return b.answerCallback(callback)
	}
}

func (b *Bot) handleStartTxt(message *tgbotapi.Message) error {
	msg := tgbotapi.NewMessage(message.Chat.ID, b.messages.Responses.Start)
	msg.ReplyMarkup = b.getMainKeyboard(b.isAdmin(message.From.ID))
	_, err := b.bot.Send(msg)
	return err
}

func (b *Bot) handleUnknownCmd(message *tgbotapi.Message) error {
	return b.sendText(message.Chat.ID, b.messages.Responses.UnknownCommand)
}

// ---------------------------------------------------------------------------
// Reports
// ---------------------------------------------------------------------------

// sendReport posts a report summary as a new message (slash commands).
func (b *Bot) sendReport(chatID int64, userID int, kind report.Kind) error {
	rep, err := b.reporter.Summary(context.Background(), kind)
	if err != nil {
		_ = b.sendText(chatID, b.messages.Responses.ReportFailed)
		return err
	}
	msg := tgbotapi.NewMessage(chatID, b.reporter.RenderSummary(rep))
	msg.ReplyMarkup = b.getReportKeyboard(kind, b.isAdmin(userID))
	_, err = b.bot.Send(msg)
	return err
}

// sendAdminReport is sendReport behind the admin allow-list.
func (b *Bot) sendAdminReport(message *tgbotapi.Message, kind report.Kind) error {
	if !b.isAdmin(message.From.ID) {
		return b.sendText(message.Chat.ID, b.messages.Responses.AdminOnly)
	}
	return b.sendReport(message.Chat.ID, message.From.ID, kind)
}

// editReport swaps the tapped message for a report summary.
func (b *Bot) editReport(callback *tgbotapi.CallbackQuery, kind report.Kind) error {
	rep, err := b.reporter.Summary(context.Background(), kind)
	if err != nil {
		_ = b.editWithKeyboard(callback, b.messages.Responses.ReportFailed, b.getMainKeyboard(b.isAdmin(callback.From.ID)))
		return err
	}
	return b.editWithKeyboard(callback, b.reporter.RenderSummary(rep), b.getReportKeyboard(kind, b.isAdmin(callback.From.ID)))
}

func (b *Bot) editAdminReport(callback *tgbotapi.CallbackQuery, kind report.Kind) error {
	if !b.isAdmin(callback.From.ID) {
		return b.rejectCallback(callback)
	}
	return b.editReport(callback, kind)
}

// editDetails swaps the tapped message for a per-item breakdown. Today's
// breakdown is open to every clerk; the rest are admin-only, mirroring
// the summaries they belong to.
func (b *Bot) editDetails(callback *tgbotapi.CallbackQuery, suffix string) error {
	kind, ok := detailsKinds[suffix]
	if !ok {
		return b.answerCallback(callback)
	}
	if kind != report.Today && !b.isAdmin(callback.From.ID) {
		return b.rejectCallback(callback)
	}
	rep, items, err := b.reporter.Breakdown(context.Background(), kind)
	if err != nil {
		_ = b.editWithKeyboard(callback, b.messages.Responses.ReportFailed, b.getMainKeyboard(b.isAdmin(callback.From.ID)))
		return err
	}
	text := b.reporter.RenderBreakdown(rep, items)
	return b.editWithKeyboard(callback, text, b.getDetailsKeyboard(kind, b.isAdmin(callback.From.ID)))
}

func kindForCallback(data string) report.Kind {
	switch data {
	case WeekReportCmd:
		return report.Week
	case MonthReportCmd:
		return report.Month
	default:
		return report.AllTime
	}
}

// ---------------------------------------------------------------------------
// Sending helpers
// ---------------------------------------------------------------------------

// answerFlow renders a flow reply in place of the tapped message. The
// transition error, if any, is returned after the user has been answered
// so the loop can log it.
func (b *Bot) answerFlow(callback *tgbotapi.CallbackQuery, reply flow.Reply, flowErr error) error {
	if reply.Text != "" {
		kb := b.getFlowKeyboard(reply, b.isAdmin(callback.From.ID))
		if err := b.editWithKeyboard(callback, reply.Text, kb); err != nil {
			return err
		}
	} else {
		_ = b.answerCallback(callback)
	}
	return flowErr
}

func (b *Bot) editWithKeyboard(callback *tgbotapi.CallbackQuery, text string, kb tgbotapi.InlineKeyboardMarkup) error {
	edit := tgbotapi.NewEditMessageText(callback.Message.Chat.ID, callback.Message.MessageID, text)
	edit.ReplyMarkup = &kb
	if _, err := b.bot.Send(edit); err != nil {
		return err
	}
	return b.answerCallback(callback)
}

func (b *Bot) sendText(chatID int64, text string) error {
	_, err := b.bot.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

func (b *Bot) answerCallback(callback *tgbotapi.CallbackQuery) error {
	_, err := b.bot.AnswerCallbackQuery(tgbotapi.NewCallback(callback.ID, ""))
	return err
}

// rejectCallback pops the admin-only alert without changing any state.
func (b *Bot) rejectCallback(callback *tgbotapi.CallbackQuery) error {
	_, err := b.bot.AnswerCallbackQuery(tgbotapi.NewCallbackWithAlert(callback.ID, b.messages.Responses.AdminOnly))
	return err
}
