package repository

import (
	"github.com/Mitesh-Saste/OLP/internal/model"
	"gorm.io/gorm"
)

type AttemptRepository interface {
	Create(attempt *model.QuizAttempt) error
	// FindByUserAndQuiz returns attempts in insertion order; "latest" means the
	// last element, not the newest timestamp.
	FindByUserAndQuiz(userID, quizID uint) ([]model.QuizAttempt, error)
	CountByUserAndQuiz(userID, quizID uint) (int64, error)
	PassedQuizIDs(userID uint, quizIDs []uint) ([]uint, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(attempt *model.QuizAttempt) error {
	return r.db.Create(attempt).Error
}

func (r *attemptRepository) FindByUserAndQuiz(userID, quizID uint) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.db.Where("user_id = ? AND quiz_id = ?", userID, quizID).Order("id ASC").Find(&attempts).Error
	return attempts, err
}

func (r *attemptRepository) CountByUserAndQuiz(userID, quizID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.QuizAttempt{}).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Count(&count).Error
	return count, err
}

// PassedQuizIDs returns the distinct quiz ids among quizIDs on which the user
// has at least one passed attempt.
func (r *attemptRepository) PassedQuizIDs(userID uint, quizIDs []uint) ([]uint, error) {
	ids := []uint{}
	if len(quizIDs) == 0 {
		return ids, nil
	}
	err := r.db.Model(&model.QuizAttempt{}).
		Distinct("quiz_id").
		Where("user_id = ? AND quiz_id IN ? AND passed = ?", userID, quizIDs, true).
		Pluck("quiz_id", &ids).Error
	return ids, err
}
