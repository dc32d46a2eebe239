package types

// Navigation actions
type NavigateAction struct {
	Direction string // "left" or "right"
}

func (a NavigateAction) Type() string { return "navigate" }

// SelectAction jumps to a card by index, the keyboard equivalent of a dot click
type SelectAction struct {
	Index int
}

func (a SelectAction) Type() string { return "select" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Help actions
type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type ScrollHelpAction struct {
	Delta int
}

func (a ScrollHelpAction) Type() string { return "scroll_help" }

type OpenHelpPagerAction struct{}

func (a OpenHelpPagerAction) Type() string { return "open_help_pager" }

type ReloadDeckAction struct{}

func (a ReloadDeckAction) Type() string { return "reload_deck" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
