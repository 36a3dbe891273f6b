package repository

import (
	"github.com/Mitesh-Saste/OLP/internal/model"
	"gorm.io/gorm"
)

type CourseRepository interface {
	Create(course *model.Course) error
	FindByID(id uint) (*model.Course, error)
	FindAll(publishedOnly bool, tag string) ([]model.Course, error)
	FindByIDs(ids []uint) ([]model.Course, error)
	Update(course *model.Course) error
	DeleteCascade(courseID uint) error
}

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(course *model.Course) error {
	return r.db.Create(course).Error
}

func (r *courseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	if err := r.db.First(&course, id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) FindAll(publishedOnly bool, tag string) ([]model.Course, error) {
	var courses []model.Course
	query := r.db.Order("created_at DESC")
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	if tag != "" {
		query = query.Where("tags LIKE ?", "%\""+tag+"\"%")
	}
	err := query.Find(&courses).Error
	return courses, err
}

func (r *courseRepository) FindByIDs(ids []uint) ([]model.Course, error) {
	var courses []model.Course
	if len(ids) == 0 {
		return courses, nil
	}
	err := r.db.Where("id IN ?", ids).Order("created_at DESC").Find(&courses).Error
	return courses, err
}

func (r *courseRepository) Update(course *model.Course) error {
	return r.db.Save(course).Error
}

// DeleteCascade removes the course and everything hanging off it in one
// transaction: sections, lessons, section quizzes with their questions and
// options, quiz attempts on those quizzes, lesson progress, and enrollments.
// Either all of it goes or none of it does.
func (r *courseRepository) DeleteCascade(courseID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var quizIDs []uint
		if err := tx.Model(&model.SectionQuiz{}).
			Joins("JOIN sections ON sections.id = section_quizzes.section_id").
			Where("sections.course_id = ?", courseID).
			Pluck("section_quizzes.id", &quizIDs).Error; err != nil {
			return err
		}

		if len(quizIDs) > 0 {
			var questionIDs []uint
			if err := tx.Model(&model.QuizQuestion{}).
				Where("quiz_id IN ?", quizIDs).
				Pluck("id", &questionIDs).Error; err != nil {
				return err
			}
			if len(questionIDs) > 0 {
				if err := tx.Where("question_id IN ?", questionIDs).Delete(&model.QuizOption{}).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("quiz_id IN ?", quizIDs).Delete(&model.QuizQuestion{}).Error; err != nil {
				return err
			}
			if err := tx.Where("quiz_id IN ?", quizIDs).Delete(&model.QuizAttempt{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", quizIDs).Delete(&model.SectionQuiz{}).Error; err != nil {
				return err
			}
		}

		var lessonIDs []uint
		if err := tx.Model(&model.Lesson{}).
			Where("course_id = ?", courseID).
			Pluck("id", &lessonIDs).Error; err != nil {
			return err
		}
		if len(lessonIDs) > 0 {
			if err := tx.Where("lesson_id IN ?", lessonIDs).Delete(&model.LessonProgress{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("course_id = ?", courseID).Delete(&model.Lesson{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", courseID).Delete(&model.Section{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", courseID).Delete(&model.Enrollment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Course{}, courseID).Error
	})
}
