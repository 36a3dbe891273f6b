package model

import "time"

// LessonProgress records that a user finished a lesson. One row per (user, lesson);
// once completed it stays completed, there is no uncomplete operation.
type LessonProgress struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	UserID      uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_progress_user_lesson"`
	LessonID    uint       `json:"lesson_id" gorm:"not null;uniqueIndex:idx_progress_user_lesson"`
	Completed   bool       `json:"completed" gorm:"not null;default:false"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
