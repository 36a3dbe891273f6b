package dto

// CourseProgressDTO is the display-only completion aggregate: finished lessons
// plus passed quizzes over total course items. Distinct from certificate
// eligibility, which is strictly all-or-nothing.
type CourseProgressDTO struct {
	CourseID           uint   `json:"course_id"`
	CompletedItems     int    `json:"completed_items"`
	TotalItems         int    `json:"total_items"`
	Percentage         int    `json:"percentage"`
	CompletedLessonIDs []uint `json:"completed_lesson_ids"`
}
