package models

import "time"

type Question struct {
	ID        string
	Content   string
	UserID    string
	CreatedAt time.Time
}

type Answer struct {
	ID         string
	Content    string
	UserID     string
	QuestionID string
	CreatedAt  time.Time
}

// AnswerDetails is an answer joined with the content of its question.
type AnswerDetails struct {
	Answer
	QuestionContent string
}

// Stats is a point-in-time count of forum records.
type Stats struct {
	Users          int64     `json:"users"`
	ActiveSessions int64     `json:"activeSessions"`
	Questions      int64     `json:"questions"`
	Answers        int64     `json:"answers"`
	GeneratedAt    time.Time `json:"generatedAt"`
}
