package conversation

// State is the step a user's conversation is waiting on.
type State int

const (
	Idle State = iota
	AwaitingBP
	AwaitingPulse
	AwaitingComment
	AwaitingTimezoneChoice
	AwaitingReminderChoice
	AwaitingDeleteSelection
	AwaitingExportFormat
)

var stateNames = [...]string{
	Idle:                    "idle",
	AwaitingBP:              "awaiting_bp",
	AwaitingPulse:           "awaiting_pulse",
	AwaitingComment:         "awaiting_comment",
	AwaitingTimezoneChoice:  "awaiting_timezone_choice",
	AwaitingReminderChoice:  "awaiting_reminder_choice",
	AwaitingDeleteSelection: "awaiting_delete_selection",
	AwaitingExportFormat:    "awaiting_export_format",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}
