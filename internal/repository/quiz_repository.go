package repository

import (
	"github.com/Mitesh-Saste/OLP/internal/model"
	"gorm.io/gorm"
)

type QuizRepository interface {
	FindByID(id uint) (*model.SectionQuiz, error)
	FindBySectionID(sectionID uint) (*model.SectionQuiz, error)
	FindBySectionIDWithQuestions(sectionID uint) (*model.SectionQuiz, error)
	FindByCourseID(courseID uint) ([]model.SectionQuiz, error)
}

type quizRepository struct {
	db *gorm.DB
}

func NewQuizRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) FindByID(id uint) (*model.SectionQuiz, error) {
	var quiz model.SectionQuiz
	if err := r.db.First(&quiz, id).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) FindBySectionID(sectionID uint) (*model.SectionQuiz, error) {
	var quiz model.SectionQuiz
	err := r.db.Where("section_id = ?", sectionID).First(&quiz).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) FindBySectionIDWithQuestions(sectionID uint) (*model.SectionQuiz, error) {
	var quiz model.SectionQuiz
	err := r.db.Preload("Questions.Options").Where("section_id = ?", sectionID).First(&quiz).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

// FindByCourseID returns every quiz attached to the course's sections.
func (r *quizRepository) FindByCourseID(courseID uint) ([]model.SectionQuiz, error) {
	var quizzes []model.SectionQuiz
	err := r.db.
		Joins("JOIN sections ON sections.id = section_quizzes.section_id").
		Where("sections.course_id = ? AND sections.deleted_at IS NULL", courseID).
		Find(&quizzes).Error
	return quizzes, err
}
