package repository

import (
	"github.com/Mitesh-Saste/OLP/internal/model"
	"gorm.io/gorm"
)

type EnrollmentRepository interface {
	Create(enrollment *model.Enrollment) error
	Exists(userID, courseID uint) (bool, error)
	CourseIDsByUserID(userID uint) ([]uint, error)
}

type enrollmentRepository struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) Create(enrollment *model.Enrollment) error {
	return r.db.Create(enrollment).Error
}

func (r *enrollmentRepository) Exists(userID, courseID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count > 0, err
}

func (r *enrollmentRepository) CourseIDsByUserID(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.Enrollment{}).Where("user_id = ?", userID).Pluck("course_id", &ids).Error
	return ids, err
}
