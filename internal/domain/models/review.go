package models

import "time"

// ConversationEntryType tags one entry in a sprint review's conversation log.
type ConversationEntryType string

const (
	EntryTypeFeedback       ConversationEntryType = "feedback"
	EntryTypeAIQuestion     ConversationEntryType = "ai_question"
	EntryTypeHumanResponse  ConversationEntryType = "human_response"
	EntryTypeAIAcknowledgment ConversationEntryType = "ai_acknowledgment"
)

// ConversationEntry is one tagged entry in the ordered, append-only
// conversation log. Entries are never removed. Questions carry a generated
// correlation id so responses can reference them.
type ConversationEntry struct {
	Type       ConversationEntryType `json:"type"`
	Role       string                `json:"role"`
	Content    string                `json:"content"`
	Timestamp  time.Time             `json:"timestamp"`
	QuestionID string                `json:"question_id,omitempty"`
}

// SprintReview holds the feedback/Q&A record attached to a sprint's review
// stage. ConversationLog is stored as one embedded ordered document, so
// appends must go through the repository's conditional-append primitive to
// avoid lost updates under concurrent writers.
type SprintReview struct {
	ID              string              `json:"id" db:"id"`
	SprintID        string              `json:"sprint_id" db:"sprint_id"`
	ConversationLog []ConversationEntry `json:"conversation_log" db:"conversation_log"`
	CreatedAt       time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at" db:"updated_at"`
}
