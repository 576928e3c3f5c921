package conversation

import "github.com/saymealien/bloodpressurebot/internal/export"

// Menu identifies which keyboard the transport should show with a reply.
type Menu int

const (
	MenuNone Menu = iota
	MenuMain
	MenuSettings
	MenuTimezone
	MenuReminders
	MenuExport
	MenuCancel
	MenuDelete // numbered Options plus Cancel
)

// Reply is what the engine wants sent back for one inbound event.
// An empty Reply means "send nothing".
type Reply struct {
	Text     string
	Menu     Menu
	Options  []string
	Document *export.Document
}

// Empty reports whether there is nothing to send.
func (r Reply) Empty() bool {
	return r.Text == "" && r.Document == nil
}
