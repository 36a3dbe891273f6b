package repository

import (
	"github.com/Mitesh-Saste/OLP/internal/model"
	"gorm.io/gorm"
)

type ProgressRepository interface {
	FindByUserAndLesson(userID, lessonID uint) (*model.LessonProgress, error)
	Save(progress *model.LessonProgress) error
	CompletedLessonIDs(userID uint, lessonIDs []uint) ([]uint, error)
	CountCompleted(userID uint, lessonIDs []uint) (int64, error)
}

type progressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) FindByUserAndLesson(userID, lessonID uint) (*model.LessonProgress, error) {
	var progress model.LessonProgress
	err := r.db.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *progressRepository) Save(progress *model.LessonProgress) error {
	return r.db.Save(progress).Error
}

func (r *progressRepository) CompletedLessonIDs(userID uint, lessonIDs []uint) ([]uint, error) {
	ids := []uint{}
	if len(lessonIDs) == 0 {
		return ids, nil
	}
	err := r.db.Model(&model.LessonProgress{}).
		Where("user_id = ? AND lesson_id IN ? AND completed = ?", userID, lessonIDs, true).
		Pluck("lesson_id", &ids).Error
	return ids, err
}

func (r *progressRepository) CountCompleted(userID uint, lessonIDs []uint) (int64, error) {
	if len(lessonIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.Model(&model.LessonProgress{}).
		Where("user_id = ? AND lesson_id IN ? AND completed = ?", userID, lessonIDs, true).
		Count(&count).Error
	return count, err
}
