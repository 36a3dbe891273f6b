package repository

import (
	"github.com/Mitesh-Saste/OLP/internal/model"
	"gorm.io/gorm"
)

type LessonRepository interface {
	Create(lesson *model.Lesson) error
	FindByID(id uint) (*model.Lesson, error)
	FindByCourseID(courseID uint) ([]model.Lesson, error)
	IDsByCourseID(courseID uint) ([]uint, error)
	IDsBySectionIDs(sectionIDs []uint) ([]uint, error)
}

type lessonRepository struct {
	db *gorm.DB
}

func NewLessonRepository(db *gorm.DB) LessonRepository {
	return &lessonRepository{db: db}
}

func (r *lessonRepository) Create(lesson *model.Lesson) error {
	return r.db.Create(lesson).Error
}

func (r *lessonRepository) FindByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	if err := r.db.First(&lesson, id).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *lessonRepository) FindByCourseID(courseID uint) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.db.Where("course_id = ?", courseID).Order("sort_order ASC").Find(&lessons).Error
	return lessons, err
}

func (r *lessonRepository) IDsByCourseID(courseID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.Lesson{}).Where("course_id = ?", courseID).Pluck("id", &ids).Error
	return ids, err
}

// IDsBySectionIDs returns the ids of lessons grouped under the given sections.
// Ungrouped lessons never match.
func (r *lessonRepository) IDsBySectionIDs(sectionIDs []uint) ([]uint, error) {
	var ids []uint
	if len(sectionIDs) == 0 {
		return ids, nil
	}
	err := r.db.Model(&model.Lesson{}).Where("section_id IN ?", sectionIDs).Pluck("id", &ids).Error
	return ids, err
}
