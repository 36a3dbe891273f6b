package service

import (
	"errors"
	"fmt"

	"github.com/Mitesh-Saste/OLP/internal/dto"
	"github.com/Mitesh-Saste/OLP/internal/identity"
	"github.com/Mitesh-Saste/OLP/internal/model"
	"github.com/Mitesh-Saste/OLP/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const defaultPassPercentage = 60

// QuizService is the quiz engine: authoring, grading, attempt history.
type QuizService interface {
	CreateQuiz(principal identity.Identity, sectionID uint, req dto.QuizCreateDTO) (*dto.QuizResponseDTO, error)
	GetQuiz(principal identity.Identity, sectionID uint) (*dto.QuizResponseDTO, error)
	DeleteQuiz(principal identity.Identity, sectionID uint) error
	SubmitQuiz(principal identity.Identity, quizID uint, req dto.QuizSubmitDTO) (*dto.QuizResultDTO, error)
	QuizStatus(principal identity.Identity, quizID uint) (*dto.QuizStatusDTO, error)
}

type quizService struct {
	quizRepo      repository.QuizRepository
	attemptRepo   repository.AttemptRepository
	sectionRepo   repository.SectionRepository
	courseRepo    repository.CourseRepository
	enrollmentSvc EnrollmentService
	db            *gorm.DB
}

func NewQuizService(
	quizRepo repository.QuizRepository,
	attemptRepo repository.AttemptRepository,
	sectionRepo repository.SectionRepository,
	courseRepo repository.CourseRepository,
	enrollmentSvc EnrollmentService,
	db *gorm.DB,
) QuizService {
	return &quizService{
		quizRepo:      quizRepo,
		attemptRepo:   attemptRepo,
		sectionRepo:   sectionRepo,
		courseRepo:    courseRepo,
		enrollmentSvc: enrollmentSvc,
		db:            db,
	}
}

// sectionCourse resolves a section to its course, for access checks.
func (s *quizService) sectionCourse(sectionID uint) (*model.Section, *model.Course, error) {
	section, err := s.sectionRepo.FindByID(sectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("section %d: %w", sectionID, ErrNotFound)
		}
		return nil, nil, fmt.Errorf("fetching section %d: %w", sectionID, err)
	}
	course, err := s.courseRepo.FindByID(section.CourseID)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching course %d: %w", section.CourseID, err)
	}
	return section, course, nil
}

// CreateQuiz persists the quiz, its questions and their options in one
// transaction, then resolves each question's correct answer to the generated
// option id. Grading later compares identities, never option text.
func (s *quizService) CreateQuiz(principal identity.Identity, sectionID uint, req dto.QuizCreateDTO) (*dto.QuizResponseDTO, error) {
	_, course, err := s.sectionCourse(sectionID)
	if err != nil {
		return nil, err
	}
	if !principal.IsOwnerOrAdmin(course.InstructorID) {
		return nil, ErrAccessDenied
	}

	if _, err := s.quizRepo.FindBySectionID(sectionID); err == nil {
		return nil, ErrDuplicateQuiz
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("checking existing quiz: %w", err)
	}

	passPercentage := defaultPassPercentage
	if req.PassPercentage != nil {
		if *req.PassPercentage < 1 || *req.PassPercentage > 100 {
			return nil, fmt.Errorf("pass percentage must be within 1..100: %w", ErrInvalidState)
		}
		passPercentage = *req.PassPercentage
	}

	quiz := model.SectionQuiz{
		SectionID:      sectionID,
		Title:          req.Title,
		PassPercentage: passPercentage,
	}
	for _, qReq := range req.Questions {
		question := model.QuizQuestion{Prompt: qReq.Prompt}
		for _, optText := range qReq.Options {
			question.Options = append(question.Options, model.QuizOption{Text: optText})
		}
		quiz.Questions = append(quiz.Questions, question)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&quiz).Error; err != nil {
			return fmt.Errorf("creating quiz: %w", err)
		}
		// Option ids exist now; bind each question's correct answer to one of them.
		for i := range quiz.Questions {
			question := &quiz.Questions[i]
			correctID := uint(0)
			for _, opt := range question.Options {
				if opt.Text == req.Questions[i].CorrectAnswer {
					correctID = opt.ID
					break
				}
			}
			if correctID == 0 {
				return fmt.Errorf("question %q: correct answer matches none of its options: %w", question.Prompt, ErrInvalidState)
			}
			question.CorrectOptionID = correctID
			if err := tx.Model(&model.QuizQuestion{}).Where("id = ?", question.ID).
				Update("correct_option_id", correctID).Error; err != nil {
				return fmt.Errorf("binding correct option: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateQuiz
		}
		log.Error().Err(err).Uint("sectionID", sectionID).Msg("Quiz creation failed")
		return nil, err
	}

	return quizToDTO(&quiz, true), nil
}

// GetQuiz returns the quiz for a section. Correct option ids are included only
// for the course owner or an admin.
func (s *quizService) GetQuiz(principal identity.Identity, sectionID uint) (*dto.QuizResponseDTO, error) {
	_, course, err := s.sectionCourse(sectionID)
	if err != nil {
		return nil, err
	}
	if err := s.enrollmentSvc.CanAccess(principal, course); err != nil {
		return nil, err
	}

	quiz, err := s.quizRepo.FindBySectionIDWithQuestions(sectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("quiz for section %d: %w", sectionID, ErrNotFound)
		}
		return nil, fmt.Errorf("fetching quiz: %w", err)
	}

	return quizToDTO(quiz, principal.IsOwnerOrAdmin(course.InstructorID)), nil
}

// DeleteQuiz removes the quiz with its questions and options. Attempts are
// independent facts and stay.
func (s *quizService) DeleteQuiz(principal identity.Identity, sectionID uint) error {
	_, course, err := s.sectionCourse(sectionID)
	if err != nil {
		return err
	}
	if !principal.IsOwnerOrAdmin(course.InstructorID) {
		return ErrAccessDenied
	}

	quiz, err := s.quizRepo.FindBySectionID(sectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("quiz for section %d: %w", sectionID, ErrNotFound)
		}
		return fmt.Errorf("fetching quiz: %w", err)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var questionIDs []uint
		if err := tx.Model(&model.QuizQuestion{}).Where("quiz_id = ?", quiz.ID).
			Pluck("id", &questionIDs).Error; err != nil {
			return err
		}
		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&model.QuizOption{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&model.QuizQuestion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.SectionQuiz{}, quiz.ID).Error
	})
	if err != nil {
		log.Error().Err(err).Uint("quizID", quiz.ID).Msg("Quiz cascade delete failed")
		return fmt.Errorf("deleting quiz %d: %w", quiz.ID, err)
	}
	return nil
}

// SubmitQuiz grades one submission and appends an immutable attempt. Every
// question on the quiz is graded; a missing answer is simply incorrect. The
// question read and the attempt insert share a transaction so the score is
// consistent with the questions it was graded against.
func (s *quizService) SubmitQuiz(principal identity.Identity, quizID uint, req dto.QuizSubmitDTO) (*dto.QuizResultDTO, error) {
	quizProbe, err := s.quizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("quiz %d: %w", quizID, ErrNotFound)
		}
		return nil, fmt.Errorf("fetching quiz %d: %w", quizID, err)
	}
	_, course, err := s.sectionCourse(quizProbe.SectionID)
	if err != nil {
		return nil, err
	}
	if err := s.enrollmentSvc.CanAccess(principal, course); err != nil {
		return nil, err
	}

	var attempt model.QuizAttempt
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var quiz model.SectionQuiz
		if err := tx.Preload("Questions").First(&quiz, quizID).Error; err != nil {
			// The quiz may have been deleted since the pre-transaction read.
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("quiz %d: %w", quizID, ErrNotFound)
			}
			return fmt.Errorf("fetching quiz %d: %w", quizID, err)
		}

		correct := 0
		for _, question := range quiz.Questions {
			if chosen, ok := req.Answers[question.ID]; ok && chosen == question.CorrectOptionID {
				correct++
			}
		}

		total := len(quiz.Questions)
		percentage := 0
		if total > 0 {
			percentage = int(float64(correct)/float64(total)*100 + 0.5)
		}

		attempt = model.QuizAttempt{
			QuizID:         quizID,
			UserID:         principal.UserID,
			Score:          correct,
			TotalQuestions: total,
			Passed:         percentage >= quiz.PassPercentage,
		}
		return tx.Create(&attempt).Error
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Error().Err(err).Uint("quizID", quizID).Uint("userID", principal.UserID).Msg("Quiz submission failed")
		}
		return nil, err
	}

	attemptCount, err := s.attemptRepo.CountByUserAndQuiz(principal.UserID, quizID)
	if err != nil {
		return nil, fmt.Errorf("counting attempts: %w", err)
	}

	return &dto.QuizResultDTO{
		Percentage:     attempt.Percentage(),
		CorrectAnswers: attempt.Score,
		TotalQuestions: attempt.TotalQuestions,
		Passed:         attempt.Passed,
		AttemptCount:   attemptCount,
	}, nil
}

// QuizStatus reports the latest attempt in insertion order. A user with no
// attempts gets an empty status, not an error.
func (s *quizService) QuizStatus(principal identity.Identity, quizID uint) (*dto.QuizStatusDTO, error) {
	quiz, err := s.quizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("quiz %d: %w", quizID, ErrNotFound)
		}
		return nil, fmt.Errorf("fetching quiz %d: %w", quizID, err)
	}
	_, course, err := s.sectionCourse(quiz.SectionID)
	if err != nil {
		return nil, err
	}
	if err := s.enrollmentSvc.CanAccess(principal, course); err != nil {
		return nil, err
	}

	attempts, err := s.attemptRepo.FindByUserAndQuiz(principal.UserID, quizID)
	if err != nil {
		return nil, fmt.Errorf("fetching attempts: %w", err)
	}
	if len(attempts) == 0 {
		return &dto.QuizStatusDTO{}, nil
	}

	latest := attempts[len(attempts)-1]
	return &dto.QuizStatusDTO{
		Percentage:   latest.Percentage(),
		Passed:       latest.Passed,
		AttemptCount: int64(len(attempts)),
	}, nil
}

func quizToDTO(quiz *model.SectionQuiz, includeCorrect bool) *dto.QuizResponseDTO {
	resp := dto.QuizResponseDTO{
		ID:             quiz.ID,
		SectionID:      quiz.SectionID,
		Title:          quiz.Title,
		PassPercentage: quiz.PassPercentage,
		Questions:      make([]dto.QuizQuestionResponseDTO, 0, len(quiz.Questions)),
	}
	for _, question := range quiz.Questions {
		qDTO := dto.QuizQuestionResponseDTO{
			ID:      question.ID,
			Prompt:  question.Prompt,
			Options: make([]dto.QuizOptionResponseDTO, 0, len(question.Options)),
		}
		for _, opt := range question.Options {
			qDTO.Options = append(qDTO.Options, dto.QuizOptionResponseDTO{ID: opt.ID, Text: opt.Text})
		}
		if includeCorrect {
			correctID := question.CorrectOptionID
			qDTO.CorrectOptionID = &correctID
		}
		resp.Questions = append(resp.Questions, qDTO)
	}
	return &resp
}
