package models

// State identifies the conversation step a user is currently in.
type State int

const (
	StateIdle State = iota
	StateAwaitingDate
	StateAwaitingWeight
	StateAwaitingTime
	StateAwaitingMessage
)
