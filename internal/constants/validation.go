// Package constants provides shared constants for the jalaali-picker application
package constants

// Picker actions accepted by the HTTP session API
const (
	ActionOpen            = "open"
	ActionClose           = "close"
	ActionNextMonth       = "next_month"
	ActionPrevMonth       = "prev_month"
	ActionNextYear        = "next_year"
	ActionPrevYear        = "prev_year"
	ActionToggleYearPick  = "toggle_year_picker"
	ActionEnterYearPick   = "enter_year_picker"
	ActionExitYearPick    = "exit_year_picker"
	ActionPickYear        = "pick_year"
	ActionSelectDay       = "select_day"
	ActionSelectToday     = "select_today"
	ActionSetTime         = "set_time"
	ActionSetValue        = "set_value"
	ActionClick           = "click"
	ActionResize          = "resize"
	ActionScroll          = "scroll"
	ActionEscape          = "escape"
	ActionAdvanceTimeline = "wait"
)

// ValidActions is a map of valid picker action names
// Used for validating user input before it reaches a picker session
var ValidActions = map[string]bool{
	ActionOpen:            true,
	ActionClose:           true,
	ActionNextMonth:       true,
	ActionPrevMonth:       true,
	ActionNextYear:        true,
	ActionPrevYear:        true,
	ActionToggleYearPick:  true,
	ActionEnterYearPick:   true,
	ActionExitYearPick:    true,
	ActionPickYear:        true,
	ActionSelectDay:       true,
	ActionSelectToday:     true,
	ActionSetTime:         true,
	ActionSetValue:        true,
	ActionClick:           true,
	ActionResize:          true,
	ActionScroll:          true,
	ActionEscape:          true,
	ActionAdvanceTimeline: true,
}

// IsValidAction checks if a given action string is a known picker action
func IsValidAction(action string) bool {
	return ValidActions[action]
}
