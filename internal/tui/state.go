package tui

// ViewState is the state machine of a screen.
type ViewState int

const (
	ViewStateLoading ViewState = iota
	ViewStateList
	ViewStateDetail
	ViewStateQuitting
	ViewStateError
)

// Key bindings shared by the screens.
const (
	keyQuit     = "q"
	keyCtrlC    = "ctrl+c"
	keyEnter    = "enter"
	keyEsc      = "esc"
	keySlash    = "/"
	keyTab      = "tab"
	keyShiftTab = "shift+tab"
	keyUp       = "up"
	keyDown     = "down"
	keyK        = "k"
	keyJ        = "j"
	keyLeft     = "left"
	keyRight    = "right"
	keyPgUp     = "pgup"
	keyPgDown   = "pgdown"
	keyHome     = "home"
	keyEnd      = "end"
	keyFilter   = "f"
	keyPrevOpt  = "["
	keyNextOpt  = "]"
	keyRefresh  = "r"
	keyReset    = "x"
	keyLeadTab  = "t"
	keyExport   = "e"
)

const msgSelectedOutOfBounds = "No record selected"
