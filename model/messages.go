package model

// ChatResultMsg carries the outcome of a chat completion. Exactly one of
// Reply or Err is meaningful.
type ChatResultMsg struct {
	Reply string
	Model string
	Err   error
}

// VisionResultMsg carries the outcome of an image analysis.
type VisionResultMsg struct {
	Description string
	Err         error
}

// TranscriptResultMsg carries the outcome of an audio transcription.
type TranscriptResultMsg struct {
	Text string
	Err  error
}

// ConversationSavedMsg reports a background save of the active
// conversation.
type ConversationSavedMsg struct {
	Err error
}
