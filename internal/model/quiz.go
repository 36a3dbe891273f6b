package model

import "time"

// SectionQuiz is the single quiz a section may carry. PassPercentage is the one
// canonical pass threshold: submission grading and certificate eligibility both
// read it, nothing else defines a pass.
type SectionQuiz struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	SectionID      uint           `json:"section_id" gorm:"not null;uniqueIndex"`
	Title          string         `json:"title" gorm:"not null"`
	PassPercentage int            `json:"pass_percentage" gorm:"not null;default:60"`
	Questions      []QuizQuestion `json:"questions,omitempty" gorm:"foreignKey:QuizID"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

type QuizQuestion struct {
	ID     uint   `gorm:"primarykey" json:"id"`
	QuizID uint   `json:"quiz_id" gorm:"not null;index"`
	Prompt string `json:"prompt" gorm:"type:text;not null"`
	// CorrectOptionID is resolved when the quiz is created, so grading compares
	// option identities instead of option texts (duplicate texts grade safely).
	CorrectOptionID uint         `json:"-" gorm:"not null"`
	Options         []QuizOption `json:"options,omitempty" gorm:"foreignKey:QuestionID"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

type QuizOption struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	QuestionID uint      `json:"question_id" gorm:"not null;index"`
	Text       string    `json:"text" gorm:"type:text;not null"`
	CreatedAt  time.Time `json:"created_at"`
}
