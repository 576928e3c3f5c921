package conversation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/saymealien/bloodpressurebot/internal/domain"
	"github.com/saymealien/bloodpressurebot/internal/export"
)

// --- informational ---

func (e *Engine) welcome(_ context.Context, s *Session, _ string) (Reply, State) {
	return Reply{Text: txtWelcome, Menu: MenuMain}, s.State
}

func (e *Engine) about(_ context.Context, s *Session, _ string) (Reply, State) {
	return Reply{Text: txtAbout}, s.State
}

func (e *Engine) help(_ context.Context, s *Session, _ string) (Reply, State) {
	return Reply{Text: txtHelp}, s.State
}

func (e *Engine) settingsMenu(_ context.Context, s *Session, _ string) (Reply, State) {
	return Reply{Text: txtSettingsMenu, Menu: MenuSettings}, s.State
}

func (e *Engine) backToMain(_ context.Context, s *Session, _ string) (Reply, State) {
	return Reply{Text: txtBackToMain, Menu: MenuMain}, s.State
}

func (e *Engine) show(ctx context.Context, s *Session, _ string) (Reply, State) {
	entries, err := e.entries.ListEntries(ctx, s.UserID)
	if err != nil {
		return e.storeFailure(s, "list_entries", err)
	}
	if len(entries) == 0 {
		return Reply{Text: txtNoEntries}, s.State
	}
	loc := e.location(ctx, s.UserID)

	var b strings.Builder
	b.WriteString(txtDiaryHeader)
	for i, en := range entries {
		fmt.Fprintf(&b, fmtDiaryLine, i+1, en.LocalStamp(loc), en.BP, en.Pulse, en.Comment)
	}
	return Reply{Text: strings.TrimRight(b.String(), "\n")}, s.State
}

func (e *Engine) status(ctx context.Context, s *Session, _ string) (Reply, State) {
	st, err := e.settings.GetSettings(ctx, s.UserID)
	if err != nil {
		return e.storeFailure(s, "get_settings", err)
	}
	entries, err := e.entries.ListEntries(ctx, s.UserID)
	if err != nil {
		return e.storeFailure(s, "list_entries", err)
	}
	loc, err := st.Location()
	if err != nil {
		e.log.Warn("invalid stored timezone, counting in UTC",
			zap.Int64("user_id", s.UserID), zap.String("tz", st.Timezone), zap.Error(err))
	}

	today := domain.LocalDate(e.clock.Now().In(loc))
	todays := 0
	for _, en := range entries {
		if domain.LocalDate(en.CreatedAt.In(loc)) == today {
			todays++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, fmtStatusTZ, st.Timezone)
	if st.HasReminders() {
		fmt.Fprintf(&b, fmtStatusRemind, strings.Join(st.Reminders, " and "))
	} else {
		b.WriteString(txtStatusNoRem)
	}
	fmt.Fprintf(&b, fmtStatusTotals, len(entries), todays)
	return Reply{Text: b.String()}, s.State
}

// --- add ---

func (e *Engine) startAdd(_ context.Context, s *Session, _ string) (Reply, State) {
	s.reset()
	return Reply{Text: txtAskBP, Menu: MenuCancel}, AwaitingBP
}

func (e *Engine) onBP(_ context.Context, s *Session, text string) (Reply, State) {
	s.Pending[fieldBP] = text
	return Reply{Text: txtAskPulse, Menu: MenuCancel}, AwaitingPulse
}

func (e *Engine) onPulse(_ context.Context, s *Session, text string) (Reply, State) {
	s.Pending[fieldPulse] = text
	return Reply{Text: txtAskComment, Menu: MenuCancel}, AwaitingComment
}

func (e *Engine) onComment(ctx context.Context, s *Session, text string) (Reply, State) {
	en := &domain.Entry{
		UserID:    s.UserID,
		CreatedAt: e.clock.Now().UTC(),
		BP:        s.Pending[fieldBP],
		Pulse:     s.Pending[fieldPulse],
		Comment:   text,
	}
	if err := e.entries.AddEntry(ctx, en); err != nil {
		return e.storeFailure(s, "add_entry", err)
	}
	e.log.Info("entry saved", zap.Int64("user_id", s.UserID), zap.Int64("entry_id", en.ID))
	s.reset()
	return Reply{Text: fmt.Sprintf(fmtSaved, en.BP, en.Pulse, en.Comment), Menu: MenuMain}, Idle
}

// --- timezone ---

func (e *Engine) startTimezone(_ context.Context, s *Session, _ string) (Reply, State) {
	s.reset()
	return Reply{Text: txtAskTimezone, Menu: MenuTimezone}, AwaitingTimezoneChoice
}

func (e *Engine) onTimezone(ctx context.Context, s *Session, text string) (Reply, State) {
	if text == LabelOther {
		return Reply{Text: txtAskTimezoneOther, Menu: MenuCancel}, AwaitingTimezoneChoice
	}

	if zone, ok := domain.PresetZone(text); ok {
		if err := e.settings.SetTimezone(ctx, s.UserID, zone); err != nil {
			return e.storeFailure(s, "set_timezone", err)
		}
		return Reply{Text: fmt.Sprintf(fmtTimezonePreset, text, zone), Menu: MenuMain}, Idle
	}

	zone, err := domain.ValidateTZ(text)
	if err == nil {
		if err := e.settings.SetTimezone(ctx, s.UserID, zone); err != nil {
			return e.storeFailure(s, "set_timezone", err)
		}
		return Reply{Text: fmt.Sprintf(fmtTimezoneSet, zone), Menu: MenuMain}, Idle
	}
	if !errors.Is(err, domain.ErrUnknownTimezone) {
		e.log.Warn("catalogue timezone failed to load", zap.String("tz", text), zap.Error(err))
	}

	if hints := domain.SuggestTimezones(text); len(hints) > 0 {
		return Reply{
			Text:    txtTimezoneDidYou + strings.Join(hints, "\n- "),
			Menu:    MenuCancel,
			Options: hints,
		}, AwaitingTimezoneChoice
	}
	return Reply{Text: txtTimezoneUnknown, Menu: MenuTimezone}, AwaitingTimezoneChoice
}

// --- reminders ---

func (e *Engine) startReminders(_ context.Context, s *Session, _ string) (Reply, State) {
	s.reset()
	return Reply{Text: txtAskReminders, Menu: MenuReminders}, AwaitingReminderChoice
}

func (e *Engine) onReminders(ctx context.Context, s *Session, text string) (Reply, State) {
	if text == LabelCustomTimes {
		return Reply{Text: txtAskRemindersCustom, Menu: MenuCancel}, AwaitingReminderChoice
	}

	slots, err := domain.ParseSlotPair(text)
	if err != nil {
		return Reply{Text: slotErrorText(err), Menu: MenuReminders}, AwaitingReminderChoice
	}
	if err := e.settings.SetReminders(ctx, s.UserID, slots); err != nil {
		return e.storeFailure(s, "set_reminders", err)
	}
	e.log.Info("reminders updated", zap.Int64("user_id", s.UserID), zap.Strings("slots", slots))
	return Reply{Text: fmt.Sprintf(fmtRemindersSet, strings.Join(slots, " and ")), Menu: MenuMain}, Idle
}

func slotErrorText(err error) string {
	var se *domain.SlotError
	if !errors.As(err, &se) {
		return txtRemindersNeedTwo
	}
	switch {
	case errors.Is(err, domain.ErrSlotNotNumeric):
		return fmt.Sprintf(fmtSlotNotNumeric, se.Token)
	case errors.Is(err, domain.ErrSlotRange):
		return fmt.Sprintf(fmtSlotRange, se.Token)
	default:
		return fmt.Sprintf(fmtSlotFormat, se.Token)
	}
}

// --- delete ---

func (e *Engine) startDelete(ctx context.Context, s *Session, _ string) (Reply, State) {
	s.reset()
	entries, err := e.entries.ListEntries(ctx, s.UserID)
	if err != nil {
		return e.storeFailure(s, "list_entries", err)
	}
	if len(entries) == 0 {
		return Reply{Text: txtNothingToDelete, Menu: MenuMain}, Idle
	}
	loc := e.location(ctx, s.UserID)

	s.Snapshot = entries
	opts := make([]string, len(entries))
	var b strings.Builder
	b.WriteString(txtDeleteHeader)
	for i, en := range entries {
		opts[i] = strconv.Itoa(i + 1)
		fmt.Fprintf(&b, fmtDeleteLine, i+1, en.LocalStamp(loc), en.BP, en.Pulse)
	}
	return Reply{Text: b.String(), Menu: MenuDelete, Options: opts}, AwaitingDeleteSelection
}

func (e *Engine) onDeleteSelection(ctx context.Context, s *Session, text string) (Reply, State) {
	n, err := strconv.Atoi(text)
	if err != nil || !allDigits(text) {
		s.reset()
		return Reply{Text: txtDeleteNotNumber, Menu: MenuMain}, Idle
	}
	if n < 1 || n > len(s.Snapshot) {
		total := len(s.Snapshot)
		s.reset()
		return Reply{Text: fmt.Sprintf(fmtDeleteRange, total), Menu: MenuMain}, Idle
	}

	target := s.Snapshot[n-1]
	ok, err := e.entries.DeleteEntry(ctx, s.UserID, target.ID)
	if err != nil {
		return e.storeFailure(s, "delete_entry", err)
	}
	s.reset()
	if !ok {
		e.log.Warn("entry already gone", zap.Int64("user_id", target.UserID), zap.Int64("entry_id", target.ID))
		return Reply{Text: txtDeleteFailed, Menu: MenuMain}, Idle
	}

	loc := e.location(ctx, target.UserID)
	return Reply{
		Text: fmt.Sprintf(fmtDeleted, target.LocalStamp(loc), target.BP, target.Pulse, target.Comment),
		Menu: MenuMain,
	}, Idle
}

// allDigits rejects signs and spaces that strconv.Atoi would accept.
func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// --- export ---

func (e *Engine) startExport(_ context.Context, s *Session, _ string) (Reply, State) {
	s.reset()
	return Reply{Text: txtAskExport, Menu: MenuExport}, AwaitingExportFormat
}

func (e *Engine) onExportFormat(ctx context.Context, s *Session, text string) (Reply, State) {
	format, ok := export.ParseFormat(text)
	if !ok {
		return Reply{Text: txtExportInvalid, Menu: MenuMain}, Idle
	}

	entries, err := e.entries.ListEntries(ctx, s.UserID)
	if err != nil {
		return e.storeFailure(s, "list_entries", err)
	}
	if len(entries) == 0 {
		return Reply{Text: txtNothingToExport, Menu: MenuMain}, Idle
	}

	doc, err := e.exporter.Export(format, entries, e.location(ctx, s.UserID))
	if err != nil {
		e.log.Error("export failed",
			zap.Int64("user_id", s.UserID), zap.String("format", string(format)), zap.Error(err))
		return Reply{Text: fmt.Sprintf(fmtExportFailed, err), Menu: MenuMain}, Idle
	}
	return Reply{Document: doc, Menu: MenuMain}, Idle
}
