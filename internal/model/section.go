package model

import (
	"time"

	"gorm.io/gorm"
)

type Section struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CourseID  uint           `json:"course_id" gorm:"not null;index"`
	Title     string         `json:"title" gorm:"not null"`
	SortOrder int            `json:"sort_order" gorm:"not null"`
	Lessons   []Lesson       `json:"lessons,omitempty" gorm:"foreignKey:SectionID"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
