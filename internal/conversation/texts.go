package conversation

// Button labels. The transport builds keyboards from these.
const (
	LabelAdd          = "Add"
	LabelShow         = "Show"
	LabelExport       = "Export"
	LabelDelete       = "Delete"
	LabelStatus       = "Status"
	LabelSettings     = "Settings"
	LabelSetTimezone  = "Set Timezone"
	LabelSetReminders = "Set Reminders"
	LabelBackToMain   = "Back to Main"
	LabelCancel       = "Cancel"
	LabelOther        = "Other"
	LabelCustomTimes  = "Custom Times"
)

// ReminderPresets are the two-slot choices offered as buttons.
var ReminderPresets = []string{"07:00 19:00", "08:00 20:00", "09:00 21:00"}

// ExportLabels are the export format buttons.
var ExportLabels = []string{"CSV", "XLSX", "PDF"}

const (
	txtWelcome = "👋 Hi! I'm your Blood Pressure Diary Bot.\nUse the buttons or commands to interact."
	txtAbout   = "ℹ️ Blood Pressure Diary Bot\nTrack BP, pulse, notes, and reminders.\nAll data is private."
	txtHelp    = `Commands:
/add - record a new measurement
/show - list your diary
/export - download the diary as CSV, XLSX or PDF
/delete - remove an entry
/status - timezone, reminders and totals
/timezone - set your timezone
/remind - set two daily reminders
/cancel - abort the current action`
	txtHint           = "🤔 Use the buttons or /help to see what I can do."
	txtUnknownCommand = "I don't know this command. Use /help to list commands."
	txtStoreFailure   = "⚠️ Your diary is temporarily unavailable. Please try again later."
	txtBackToMain     = "↩️ Back to main menu"
	txtSettingsMenu   = "⚙️ Settings Menu:\n• Set Timezone - Configure your timezone\n• Set Reminders - Set two daily reminders"

	txtAskBP      = "Please enter your blood pressure (e.g., 120/80):"
	txtAskPulse   = "Enter your pulse (e.g., 72):"
	txtAskComment = "Add a short comment:"
	fmtSaved      = "✅ Entry saved:\nBP: %s | Pulse: %s\nNote: %s"

	txtNoEntries    = "🔭 No entries yet."
	txtDiaryHeader  = "📖 Your diary:\n\n"
	fmtDiaryLine    = "%d. %s\nBP: %s | Pulse: %s\nNote: %s\n\n"
	fmtStatusTZ     = "🌍 Timezone: %s\n"
	fmtStatusRemind = "⏰ Daily reminders: %s"
	txtStatusNoRem  = "⏰ No reminders set. Use Settings to configure."
	fmtStatusTotals = "\n📊 Total entries: %d\n📅 Today's entries: %d"

	txtAskTimezone      = "🌍 Choose your timezone or type 'Other' to enter a custom one:"
	txtAskTimezoneOther = "🌍 Please enter your timezone (e.g., Europe/Paris, Asia/Singapore):\n\nYou can find your timezone at: https://en.wikipedia.org/wiki/List_of_tz_database_time_zones"
	fmtTimezonePreset   = "✅ Timezone set to %s (%s)"
	fmtTimezoneSet      = "✅ Timezone set to %s"
	txtTimezoneDidYou   = "⚠️ Timezone not found. Did you mean?\n- "
	txtTimezoneUnknown  = "⚠️ Timezone not recognized. Please choose from the menu or enter a valid timezone."

	txtAskReminders       = "⏰ Set two daily reminders for blood pressure measurement:\n\nChoose from common times or select 'Custom Times' to set your own:"
	txtAskRemindersCustom = "⏰ Please enter two reminder times in 24-hour format (HH:MM), separated by space:\n\nExample: 08:00 20:00 for 8 AM and 8 PM"
	txtRemindersNeedTwo   = "⚠️ Please choose from the menu or enter two times in HH:MM format separated by space."
	fmtSlotFormat         = "⚠️ Invalid format: %s. Please use HH:MM format."
	fmtSlotNotNumeric     = "⚠️ Invalid time: %s. Please use numbers in HH:MM format."
	fmtSlotRange          = "⚠️ Invalid time: %s. Hours must be 0-23, minutes 0-59."
	fmtRemindersSet       = "✅ Reminders set for %s daily!"

	txtNothingToDelete = "🔭 No entries to delete."
	txtDeleteHeader    = "🗑️ Select entry to delete:\n\n"
	fmtDeleteLine      = "%d. %s - BP: %s | Pulse: %s\n"
	txtDeleteNotNumber = "⚠️ Please select a number from the list."
	fmtDeleteRange     = "⚠️ Please select a number between 1 and %d."
	fmtDeleted         = "✅ Entry deleted:\n%s\nBP: %s | Pulse: %s\nNote: %s"
	txtDeleteFailed    = "❌ Error deleting entry."

	txtAskExport       = "📤 Choose format to export:\n\n⚠️ Note: PDF export may not display non-English/Latin characters correctly (like Cyrillic, Arabic, Chinese, etc.). For these languages, please use CSV or XLSX format instead."
	txtExportInvalid   = "❌ Invalid option. Export cancelled."
	txtNothingToExport = "📭 No entries to export."
	fmtExportFailed    = "❌ Error during export: %v"

	txtCancelled         = "❌ Action cancelled."
	txtTimezoneCancelled = "❌ Timezone setup cancelled."
	txtRemindCancelled   = "❌ Reminder setup cancelled."
	txtDeleteCancelled   = "❌ Delete cancelled."
	txtExportCancelled   = "❌ Export cancelled."
)

// cancelText is the acknowledgement for Cancel, per state being abandoned.
var cancelText = map[State]string{
	AwaitingTimezoneChoice:  txtTimezoneCancelled,
	AwaitingReminderChoice:  txtRemindCancelled,
	AwaitingDeleteSelection: txtDeleteCancelled,
	AwaitingExportFormat:    txtExportCancelled,
}
