package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/Mitesh-Saste/OLP/internal/dto"
	"github.com/Mitesh-Saste/OLP/internal/identity"
	"github.com/Mitesh-Saste/OLP/internal/model"
	"github.com/Mitesh-Saste/OLP/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ProgressService tracks per-lesson completion facts and aggregates them, with
// passed quizzes, into the course-level completion percentage.
type ProgressService interface {
	MarkLessonComplete(principal identity.Identity, lessonID uint) error
	CompletedLessonIDs(userID uint, lessonIDs []uint) ([]uint, error)
	CourseProgress(principal identity.Identity, courseID uint) (*dto.CourseProgressDTO, error)
}

type progressService struct {
	progressRepo  repository.ProgressRepository
	lessonRepo    repository.LessonRepository
	courseRepo    repository.CourseRepository
	quizRepo      repository.QuizRepository
	attemptRepo   repository.AttemptRepository
	enrollmentSvc EnrollmentService
}

func NewProgressService(
	progressRepo repository.ProgressRepository,
	lessonRepo repository.LessonRepository,
	courseRepo repository.CourseRepository,
	quizRepo repository.QuizRepository,
	attemptRepo repository.AttemptRepository,
	enrollmentSvc EnrollmentService,
) ProgressService {
	return &progressService{
		progressRepo:  progressRepo,
		lessonRepo:    lessonRepo,
		courseRepo:    courseRepo,
		quizRepo:      quizRepo,
		attemptRepo:   attemptRepo,
		enrollmentSvc: enrollmentSvc,
	}
}

// MarkLessonComplete records the (user, lesson) completion fact. Calling it a
// second time refreshes the timestamp but is otherwise a no-op success; there
// is no way to uncomplete a lesson.
func (s *progressService) MarkLessonComplete(principal identity.Identity, lessonID uint) error {
	lesson, err := s.lessonRepo.FindByID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("lesson %d: %w", lessonID, ErrNotFound)
		}
		return fmt.Errorf("fetching lesson %d: %w", lessonID, err)
	}
	course, err := s.courseRepo.FindByID(lesson.CourseID)
	if err != nil {
		return fmt.Errorf("fetching course %d: %w", lesson.CourseID, err)
	}
	if err := s.enrollmentSvc.CanAccess(principal, course); err != nil {
		return err
	}

	now := time.Now()
	progress, err := s.progressRepo.FindByUserAndLesson(principal.UserID, lessonID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("fetching progress: %w", err)
		}
		progress = &model.LessonProgress{
			UserID:   principal.UserID,
			LessonID: lessonID,
		}
	}

	progress.Completed = true
	progress.CompletedAt = &now
	if err := s.progressRepo.Save(progress); err != nil {
		log.Error().Err(err).Uint("lessonID", lessonID).Uint("userID", principal.UserID).Msg("Failed to save lesson progress")
		return fmt.Errorf("saving progress: %w", err)
	}
	return nil
}

// CompletedLessonIDs returns the subset of lessonIDs the user has completed.
// Empty input yields an empty set without a store round trip.
func (s *progressService) CompletedLessonIDs(userID uint, lessonIDs []uint) ([]uint, error) {
	if len(lessonIDs) == 0 {
		return []uint{}, nil
	}
	ids, err := s.progressRepo.CompletedLessonIDs(userID, lessonIDs)
	if err != nil {
		return nil, fmt.Errorf("fetching completed lessons: %w", err)
	}
	return ids, nil
}

// CourseProgress computes the display aggregate: completed lessons plus passed
// quizzes over all lessons plus attached quizzes. A quiz counts as passed when
// any attempt carries the passed flag, the same rule certification uses.
func (s *progressService) CourseProgress(principal identity.Identity, courseID uint) (*dto.CourseProgressDTO, error) {
	course, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("course %d: %w", courseID, ErrNotFound)
		}
		return nil, fmt.Errorf("fetching course %d: %w", courseID, err)
	}
	if err := s.enrollmentSvc.CanAccess(principal, course); err != nil {
		return nil, err
	}

	lessonIDs, err := s.lessonRepo.IDsByCourseID(courseID)
	if err != nil {
		return nil, fmt.Errorf("fetching lessons: %w", err)
	}
	completedLessonIDs, err := s.CompletedLessonIDs(principal.UserID, lessonIDs)
	if err != nil {
		return nil, err
	}

	quizzes, err := s.quizRepo.FindByCourseID(courseID)
	if err != nil {
		return nil, fmt.Errorf("fetching quizzes: %w", err)
	}
	quizIDs := make([]uint, 0, len(quizzes))
	for _, quiz := range quizzes {
		quizIDs = append(quizIDs, quiz.ID)
	}
	passedQuizIDs, err := s.attemptRepo.PassedQuizIDs(principal.UserID, quizIDs)
	if err != nil {
		return nil, fmt.Errorf("fetching passed quizzes: %w", err)
	}

	totalItems := len(lessonIDs) + len(quizzes)
	completedItems := len(completedLessonIDs) + len(passedQuizIDs)
	percentage := 0
	if totalItems > 0 {
		percentage = int(float64(completedItems)/float64(totalItems)*100 + 0.5)
	}

	return &dto.CourseProgressDTO{
		CourseID:           courseID,
		CompletedItems:     completedItems,
		TotalItems:         totalItems,
		Percentage:         percentage,
		CompletedLessonIDs: completedLessonIDs,
	}, nil
}
