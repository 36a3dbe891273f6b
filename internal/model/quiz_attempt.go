package model

import "time"

// QuizAttempt is one immutable scored submission. Rows are append-only; a user
// may accumulate any number of attempts per quiz.
type QuizAttempt struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	QuizID         uint      `json:"quiz_id" gorm:"not null;index:idx_attempt_user_quiz"`
	UserID         uint      `json:"user_id" gorm:"not null;index:idx_attempt_user_quiz"`
	Score          int       `json:"score" gorm:"not null"`
	TotalQuestions int       `json:"total_questions" gorm:"not null"`
	Passed         bool      `json:"passed" gorm:"not null"`
	SubmittedAt    time.Time `json:"submitted_at" gorm:"autoCreateTime"`
}

// Percentage is the attempt's score as a rounded display percentage. A
// zero-question quiz grades to 0, never a division fault.
func (a QuizAttempt) Percentage() int {
	if a.TotalQuestions == 0 {
		return 0
	}
	return int(float64(a.Score)/float64(a.TotalQuestions)*100 + 0.5)
}
