package repository

import (
	"github.com/Mitesh-Saste/OLP/internal/model"
	"gorm.io/gorm"
)

type SectionRepository interface {
	Create(section *model.Section) error
	FindByID(id uint) (*model.Section, error)
	FindByCourseID(courseID uint) ([]model.Section, error)
}

type sectionRepository struct {
	db *gorm.DB
}

func NewSectionRepository(db *gorm.DB) SectionRepository {
	return &sectionRepository{db: db}
}

func (r *sectionRepository) Create(section *model.Section) error {
	return r.db.Create(section).Error
}

func (r *sectionRepository) FindByID(id uint) (*model.Section, error) {
	var section model.Section
	if err := r.db.First(&section, id).Error; err != nil {
		return nil, err
	}
	return &section, nil
}

func (r *sectionRepository) FindByCourseID(courseID uint) ([]model.Section, error) {
	var sections []model.Section
	err := r.db.Where("course_id = ?", courseID).Order("sort_order ASC").Find(&sections).Error
	return sections, err
}
