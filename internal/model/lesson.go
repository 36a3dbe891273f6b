package model

import (
	"time"

	"gorm.io/gorm"
)

type Lesson struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CourseID  uint           `json:"course_id" gorm:"not null;index"`
	SectionID *uint          `json:"section_id,omitempty" gorm:"index"` // nil for legacy ungrouped lessons
	Title     string         `json:"title" gorm:"not null"`
	Content   string         `json:"content,omitempty" gorm:"type:text"`
	VideoURL  *string        `json:"video_url,omitempty"`
	SortOrder int            `json:"sort_order" gorm:"not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
