package model

import "time"

type ChatSpeaker string

const (
	SpeakerBot  ChatSpeaker = "bot"
	SpeakerUser ChatSpeaker = "user"
)

// ChatMessage is one transcript entry. The transcript is append-only; no
// transition edits or removes past entries.
type ChatMessage struct {
	Speaker ChatSpeaker `json:"speaker"`
	Content string      `json:"content"`
}

// ChatAnswer records the raw answer given for one question of the wizard.
type ChatAnswer struct {
	QuestionID string `json:"questionId"`
	Value      string `json:"value"`
}

// ChatSession is the server-held state of one conversational run over a form
// snapshot. CurrentIndex only ever increases; Completed is terminal.
type ChatSession struct {
	ID           string         `json:"id"`
	FormID       string         `json:"formId"`
	Questions    []FormQuestion `json:"questions"`
	CurrentIndex int            `json:"currentIndex"`
	Completed    bool           `json:"completed"`
	Transcript   []ChatMessage  `json:"transcript"`
	Answers      []ChatAnswer   `json:"answers"`
	CreatedAt    time.Time      `json:"createdAt"`
}
