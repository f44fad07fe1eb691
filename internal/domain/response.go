package domain

import "time"

// Response is the result of one conversational turn.
type Response struct {
	Text         string            `json:"text"`
	Confidence   float64           `json:"confidence"`
	Context      map[string]string `json:"context,omitempty"`
	References   []string          `json:"references"`
	FollowUps    []string          `json:"followup_questions,omitempty"`
	CodeExamples []string          `json:"code_examples,omitempty"`
}

// Turn is one entry in a conversation's bounded history.
type Turn struct {
	Query     string    `json:"query"`
	Response  string    `json:"response"`
	Topic     string    `json:"topic,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
