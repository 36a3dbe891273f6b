package dto

import "time"

// CourseCreateDTO is the instructor's request to create a course. Courses always
// start unpublished.
type CourseCreateDTO struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// CourseUpdateDTO updates course metadata; the published flag has its own endpoint.
type CourseUpdateDTO struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

type CourseResponseDTO struct {
	ID           uint      `json:"id"`
	InstructorID uint      `json:"instructor_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
	IsPublished  bool      `json:"is_published"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type SectionCreateDTO struct {
	Title     string `json:"title" binding:"required"`
	SortOrder int    `json:"sort_order"`
}

type LessonCreateDTO struct {
	Title     string  `json:"title" binding:"required"`
	Content   string  `json:"content"`
	VideoURL  *string `json:"video_url"`
	SectionID *uint   `json:"section_id"` // optional, ungrouped lessons are allowed
	SortOrder int     `json:"sort_order"`
}

type LessonResponseDTO struct {
	ID        uint    `json:"id"`
	CourseID  uint    `json:"course_id"`
	SectionID *uint   `json:"section_id,omitempty"`
	Title     string  `json:"title"`
	Content   string  `json:"content,omitempty"`
	VideoURL  *string `json:"video_url,omitempty"`
	SortOrder int     `json:"sort_order"`
}

// SectionOutlineDTO is one section in a course outline: ordered lessons plus
// whether a quiz is attached.
type SectionOutlineDTO struct {
	ID        uint                `json:"id"`
	Title     string              `json:"title"`
	SortOrder int                 `json:"sort_order"`
	Lessons   []LessonResponseDTO `json:"lessons"`
	HasQuiz   bool                `json:"has_quiz"`
	QuizID    *uint               `json:"quiz_id,omitempty"`
}

type CourseOutlineDTO struct {
	Course           CourseResponseDTO   `json:"course"`
	Sections         []SectionOutlineDTO `json:"sections"`
	UngroupedLessons []LessonResponseDTO `json:"ungrouped_lessons,omitempty"`
}
