package domain

// UserState represents the chat user's current interaction state
type UserState string

const (
	StateIdle           UserState = "idle"
	StateStudying       UserState = "studying"
	StateConfirmMiss    UserState = "confirm_miss"
	StateWaitingWord    UserState = "waiting_word"
	StateWaitingMeaning UserState = "waiting_meaning"
	StateWaitingExample UserState = "waiting_example"
)

// StateData holds temporary data for a user's current state
type StateData struct {
	State       UserState
	Mode        Mode
	CurrentWord string
	ShowHint    bool
	ShowVerify  bool
	// Draft collects a new word while it is being typed in.
	Draft Record
}
