package model

import (
	"time"

	"gorm.io/gorm"
)

type Course struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	InstructorID uint           `json:"instructor_id" gorm:"not null;index"`
	Title        string         `json:"title" gorm:"not null"`
	Description  string         `json:"description,omitempty" gorm:"type:text"`
	Tags         []string       `json:"tags,omitempty" gorm:"serializer:json;type:text"`
	IsPublished  bool           `json:"is_published" gorm:"not null;default:false"`
	Sections     []Section      `json:"sections,omitempty" gorm:"foreignKey:CourseID"`
	Lessons      []Lesson       `json:"lessons,omitempty" gorm:"foreignKey:CourseID"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
