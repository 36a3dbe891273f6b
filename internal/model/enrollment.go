package model

import "time"

// Enrollment links a student to a course. The composite unique index is the
// authoritative guard against double enrollment; rows are hard facts with no
// soft delete so the index always reflects live state.
type Enrollment struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	CourseID  uint      `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	CreatedAt time.Time `json:"created_at"`
}
