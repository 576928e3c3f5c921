// Package conversation implements the per-user dialogue state machine.
//
// Every inbound text is routed by a fixed set of tables: slash commands first,
// then labels that start or cancel a flow from any state, then the handler of
// the user's current state. A handler performs its side effect and returns
// the reply together with the next state.
package conversation

import (
	"context"
	"strings"
	"time"

	"github.com/jmhodges/clock"
	"go.uber.org/zap"

	"github.com/saymealien/bloodpressurebot/internal/export"
	"github.com/saymealien/bloodpressurebot/internal/metrics"
	"github.com/saymealien/bloodpressurebot/internal/store"
)

type handler func(e *Engine, ctx context.Context, s *Session, text string) (Reply, State)

// commands maps slash-command names to handlers. Flow commands reset the
// session; informational ones leave it as is.
var commands = map[string]handler{
	"add":      (*Engine).startAdd,
	"export":   (*Engine).startExport,
	"delete":   (*Engine).startDelete,
	"timezone": (*Engine).startTimezone,
	"remind":   (*Engine).startReminders,
	"cancel":   (*Engine).cancel,
	"start":    (*Engine).welcome,
	"about":    (*Engine).about,
	"help":     (*Engine).help,
	"show":     (*Engine).show,
	"status":   (*Engine).status,
	"settings": (*Engine).settingsMenu,
}

// entryLabels start a flow from any state, replacing whatever was in progress.
var entryLabels = map[string]handler{
	LabelAdd:          (*Engine).startAdd,
	LabelExport:       (*Engine).startExport,
	LabelDelete:       (*Engine).startDelete,
	LabelSetTimezone:  (*Engine).startTimezone,
	LabelSetReminders: (*Engine).startReminders,
}

// idleLabels are menu buttons only meaningful outside a flow.
var idleLabels = map[string]handler{
	LabelShow:       (*Engine).show,
	LabelStatus:     (*Engine).status,
	LabelSettings:   (*Engine).settingsMenu,
	LabelBackToMain: (*Engine).backToMain,
}

// transitions handles free text in each prompting state.
var transitions = map[State]handler{
	Idle:                    (*Engine).hint,
	AwaitingBP:              (*Engine).onBP,
	AwaitingPulse:           (*Engine).onPulse,
	AwaitingComment:         (*Engine).onComment,
	AwaitingTimezoneChoice:  (*Engine).onTimezone,
	AwaitingReminderChoice:  (*Engine).onReminders,
	AwaitingDeleteSelection: (*Engine).onDeleteSelection,
	AwaitingExportFormat:    (*Engine).onExportFormat,
}

// Engine drives conversations for all users.
type Engine struct {
	sessions *Table
	entries  store.EntryRepo
	settings store.SettingsRepo
	exporter export.Exporter
	log      *zap.Logger
	clock    clock.Clock
	metrics  *metrics.Metrics
}

type Option func(*Engine)

func WithClock(c clock.Clock) Option        { return func(e *Engine) { e.clock = c } }
func WithMetrics(m *metrics.Metrics) Option { return func(e *Engine) { e.metrics = m } }

func NewEngine(sessions *Table, entries store.EntryRepo, settings store.SettingsRepo, exporter export.Exporter, log *zap.Logger, opts ...Option) *Engine {
	e := &Engine{
		sessions: sessions,
		entries:  entries,
		settings: settings,
		exporter: exporter,
		log:      log,
		clock:    clock.New(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Handle processes one inbound text from userID and returns the reply.
// Events of the same user are handled one at a time.
func (e *Engine) Handle(ctx context.Context, userID int64, text string) Reply {
	text = strings.TrimSpace(text)
	if text == "" {
		return Reply{}
	}

	unlock := e.sessions.lockUser(userID)
	defer unlock()

	s := e.sessions.Get(userID)
	from := s.State
	reply, next := e.route(s.State, text)(e, ctx, &s, text)
	s.State = next
	if next == Idle {
		e.sessions.Reset(userID)
	} else {
		e.sessions.Put(s)
	}

	e.metrics.ObserveTransition(from.String(), next.String())
	if from != next {
		e.log.Debug("session transition",
			zap.Int64("user_id", userID),
			zap.Stringer("from", from),
			zap.Stringer("to", next),
		)
	}
	return reply
}

// State returns the user's current state.
func (e *Engine) State(userID int64) State {
	return e.sessions.Get(userID).State
}

func (e *Engine) route(st State, text string) handler {
	if name, ok := parseCommand(text); ok {
		if h, ok := commands[name]; ok {
			return h
		}
		return (*Engine).unknownCommand
	}
	if strings.EqualFold(text, LabelCancel) {
		return (*Engine).cancel
	}
	if h, ok := entryLabels[text]; ok {
		return h
	}
	if st == Idle {
		if h, ok := idleLabels[text]; ok {
			return h
		}
	}
	return transitions[st]
}

// parseCommand extracts the lower-cased name from "/name", "/name@bot" or
// "/name args".
func parseCommand(text string) (string, bool) {
	if !strings.HasPrefix(text, "/") {
		return "", false
	}
	name := text[1:]
	if i := strings.IndexAny(name, " \t\n"); i >= 0 {
		name = name[:i]
	}
	if i := strings.IndexByte(name, '@'); i >= 0 {
		name = name[:i]
	}
	return strings.ToLower(name), true
}

// location resolves the user's zone for rendering timestamps. Any failure
// degrades to UTC.
func (e *Engine) location(ctx context.Context, userID int64) *time.Location {
	st, err := e.settings.GetSettings(ctx, userID)
	if err != nil {
		e.log.Warn("settings unavailable, rendering in UTC", zap.Int64("user_id", userID), zap.Error(err))
		return time.UTC
	}
	loc, err := st.Location()
	if err != nil {
		e.log.Warn("invalid stored timezone, rendering in UTC",
			zap.Int64("user_id", userID), zap.String("tz", st.Timezone), zap.Error(err))
	}
	return loc
}

// storeFailure treats storage errors as retryable: the flow is abandoned and
// the user asked to try again.
func (e *Engine) storeFailure(s *Session, op string, err error) (Reply, State) {
	e.log.Error("store operation failed",
		zap.String("op", op), zap.Int64("user_id", s.UserID), zap.Error(err))
	e.metrics.ObserveStoreError(op)
	s.reset()
	return Reply{Text: txtStoreFailure, Menu: MenuMain}, Idle
}

func (e *Engine) cancel(_ context.Context, s *Session, _ string) (Reply, State) {
	text, ok := cancelText[s.State]
	if !ok {
		text = txtCancelled
	}
	s.reset()
	return Reply{Text: text, Menu: MenuMain}, Idle
}

func (e *Engine) unknownCommand(_ context.Context, s *Session, _ string) (Reply, State) {
	return Reply{Text: txtUnknownCommand}, s.State
}

func (e *Engine) hint(_ context.Context, _ *Session, _ string) (Reply, State) {
	return Reply{Text: txtHint, Menu: MenuMain}, Idle
}
