package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/saymealien/bloodpressurebot/internal/conversation"
	"github.com/saymealien/bloodpressurebot/internal/domain"
)

// maxMessageLen is Telegram's limit for one text message, in characters.
const maxMessageLen = 4096

const deleteButtonsPerRow = 5

func labelRow(labels ...string) []tgbotapi.KeyboardButton {
	row := make([]tgbotapi.KeyboardButton, 0, len(labels))
	for _, l := range labels {
		row = append(row, tgbotapi.NewKeyboardButton(l))
	}
	return row
}

func replyKeyboard(oneTime bool, rows ...[]tgbotapi.KeyboardButton) tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = oneTime
	return kb
}

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return replyKeyboard(false,
		labelRow(conversation.LabelAdd, conversation.LabelShow),
		labelRow(conversation.LabelExport, conversation.LabelDelete),
		labelRow(conversation.LabelStatus, conversation.LabelSettings),
	)
}

func settingsKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return replyKeyboard(false,
		labelRow(conversation.LabelSetTimezone, conversation.LabelSetReminders),
		labelRow(conversation.LabelBackToMain),
	)
}

// timezoneKeyboard lays the city presets out four per row, followed by
// Other and Cancel.
func timezoneKeyboard() tgbotapi.ReplyKeyboardMarkup {
	labels := make([]string, 0, len(domain.TimezonePresets)+1)
	for _, p := range domain.TimezonePresets {
		labels = append(labels, p.Label)
	}
	labels = append(labels, conversation.LabelOther)

	rows := chunkRows(labels, 4)
	rows = append(rows, labelRow(conversation.LabelCancel))
	return replyKeyboard(false, rows...)
}

func remindersKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return replyKeyboard(false,
		labelRow(conversation.ReminderPresets...),
		labelRow(conversation.LabelCustomTimes, conversation.LabelCancel),
	)
}

func exportKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return replyKeyboard(true,
		labelRow(conversation.ExportLabels...),
		labelRow(conversation.LabelCancel),
	)
}

func cancelKeyboard(options []string) tgbotapi.ReplyKeyboardMarkup {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(options)+1)
	for _, o := range options {
		rows = append(rows, labelRow(o))
	}
	rows = append(rows, labelRow(conversation.LabelCancel))
	return replyKeyboard(false, rows...)
}

func deleteKeyboard(options []string) tgbotapi.ReplyKeyboardMarkup {
	rows := chunkRows(options, deleteButtonsPerRow)
	rows = append(rows, labelRow(conversation.LabelCancel))
	return replyKeyboard(true, rows...)
}

func chunkRows(labels []string, perRow int) [][]tgbotapi.KeyboardButton {
	var rows [][]tgbotapi.KeyboardButton
	for len(labels) > 0 {
		n := perRow
		if n > len(labels) {
			n = len(labels)
		}
		rows = append(rows, labelRow(labels[:n]...))
		labels = labels[n:]
	}
	return rows
}

// keyboardFor maps a reply menu to its markup; nil leaves the current
// keyboard in place.
func keyboardFor(menu conversation.Menu, options []string) any {
	switch menu {
	case conversation.MenuMain:
		return mainMenuKeyboard()
	case conversation.MenuSettings:
		return settingsKeyboard()
	case conversation.MenuTimezone:
		return timezoneKeyboard()
	case conversation.MenuReminders:
		return remindersKeyboard()
	case conversation.MenuExport:
		return exportKeyboard()
	case conversation.MenuCancel:
		return cancelKeyboard(options)
	case conversation.MenuDelete:
		return deleteKeyboard(options)
	}
	return nil
}
