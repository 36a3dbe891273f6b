package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/Mitesh-Saste/OLP/internal/dto"
	"github.com/Mitesh-Saste/OLP/internal/identity"
	"github.com/Mitesh-Saste/OLP/internal/model"
	"github.com/Mitesh-Saste/OLP/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const issueDateLayout = "January 02, 2006"

// Ineligibility reasons. These are normal results, not errors: the caller may
// complete more work and check again.
const (
	ReasonNoSections        = "Course has no sections"
	ReasonNoLessons         = "Course has no lessons"
	ReasonLessonsIncomplete = "Not all lessons completed"
	ReasonQuizzesNotPassed  = "Not all quizzes passed with the required score"
)

// CertificateService decides certificate eligibility and issues the one
// certificate a user can hold per course.
type CertificateService interface {
	CheckAndIssue(principal identity.Identity, courseID uint) (*dto.CertificateDTO, error)
	GetCertificate(principal identity.Identity, courseID uint) (*dto.CertificateDTO, error)
}

type certificateService struct {
	certificateRepo repository.CertificateRepository
	userRepo        repository.UserRepository
	courseRepo      repository.CourseRepository
	sectionRepo     repository.SectionRepository
	lessonRepo      repository.LessonRepository
	quizRepo        repository.QuizRepository
	attemptRepo     repository.AttemptRepository
	progressRepo    repository.ProgressRepository
}

func NewCertificateService(
	certificateRepo repository.CertificateRepository,
	userRepo repository.UserRepository,
	courseRepo repository.CourseRepository,
	sectionRepo repository.SectionRepository,
	lessonRepo repository.LessonRepository,
	quizRepo repository.QuizRepository,
	attemptRepo repository.AttemptRepository,
	progressRepo repository.ProgressRepository,
) CertificateService {
	return &certificateService{
		certificateRepo: certificateRepo,
		userRepo:        userRepo,
		courseRepo:      courseRepo,
		sectionRepo:     sectionRepo,
		lessonRepo:      lessonRepo,
		quizRepo:        quizRepo,
		attemptRepo:     attemptRepo,
		progressRepo:    progressRepo,
	}
}

// CheckAndIssue returns the existing certificate when one exists, otherwise
// evaluates eligibility: every section lesson completed and every attached quiz
// passed. Ungrouped lessons are outside the required path and never block
// issuance. Ineligibility is a soft result and never creates a row. Issuance
// races are settled by the unique (user, course) index; the loser re-reads the
// winner's row, so concurrent calls agree on one certificate number.
func (s *certificateService) CheckAndIssue(principal identity.Identity, courseID uint) (*dto.CertificateDTO, error) {
	if existing, err := s.certificateRepo.FindByUserAndCourse(principal.UserID, courseID); err == nil {
		return s.certificateData(existing)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("checking existing certificate: %w", err)
	}

	course, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("course %d: %w", courseID, ErrNotFound)
		}
		return nil, fmt.Errorf("fetching course %d: %w", courseID, err)
	}

	sections, err := s.sectionRepo.FindByCourseID(courseID)
	if err != nil {
		return nil, fmt.Errorf("fetching sections: %w", err)
	}
	if len(sections) == 0 {
		return &dto.CertificateDTO{Eligible: false, Reason: ReasonNoSections}, nil
	}

	sectionIDs := make([]uint, 0, len(sections))
	for _, section := range sections {
		sectionIDs = append(sectionIDs, section.ID)
	}
	lessonIDs, err := s.lessonRepo.IDsBySectionIDs(sectionIDs)
	if err != nil {
		return nil, fmt.Errorf("fetching lessons: %w", err)
	}
	if len(lessonIDs) == 0 {
		return &dto.CertificateDTO{Eligible: false, Reason: ReasonNoLessons}, nil
	}

	completed, err := s.progressRepo.CountCompleted(principal.UserID, lessonIDs)
	if err != nil {
		return nil, fmt.Errorf("counting completed lessons: %w", err)
	}
	if completed < int64(len(lessonIDs)) {
		return &dto.CertificateDTO{Eligible: false, Reason: ReasonLessonsIncomplete}, nil
	}

	quizzes, err := s.quizRepo.FindByCourseID(courseID)
	if err != nil {
		return nil, fmt.Errorf("fetching quizzes: %w", err)
	}
	quizIDs := make([]uint, 0, len(quizzes))
	for _, quiz := range quizzes {
		quizIDs = append(quizIDs, quiz.ID)
	}
	passed, err := s.attemptRepo.PassedQuizIDs(principal.UserID, quizIDs)
	if err != nil {
		return nil, fmt.Errorf("fetching passed quizzes: %w", err)
	}
	if len(passed) < len(quizIDs) {
		return &dto.CertificateDTO{Eligible: false, Reason: ReasonQuizzesNotPassed}, nil
	}

	certificate := model.Certificate{
		UserID:            principal.UserID,
		CourseID:          courseID,
		CertificateNumber: newCertificateNumber(),
	}
	if err := s.certificateRepo.Create(&certificate); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent call issued first; return its certificate.
			winner, findErr := s.certificateRepo.FindByUserAndCourse(principal.UserID, courseID)
			if findErr != nil {
				return nil, fmt.Errorf("fetching certificate after duplicate insert: %w", findErr)
			}
			return s.certificateDataForCourse(winner, course)
		}
		log.Error().Err(err).Uint("courseID", courseID).Uint("userID", principal.UserID).Msg("Certificate insert failed")
		return nil, fmt.Errorf("issuing certificate: %w", err)
	}

	log.Info().Uint("courseID", courseID).Uint("userID", principal.UserID).
		Str("certificateNumber", certificate.CertificateNumber).Msg("Certificate issued")
	return s.certificateDataForCourse(&certificate, course)
}

// GetCertificate reads an issued certificate; it never issues one.
func (s *certificateService) GetCertificate(principal identity.Identity, courseID uint) (*dto.CertificateDTO, error) {
	certificate, err := s.certificateRepo.FindByUserAndCourse(principal.UserID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("certificate for course %d: %w", courseID, ErrNotFound)
		}
		return nil, fmt.Errorf("fetching certificate: %w", err)
	}
	return s.certificateData(certificate)
}

func (s *certificateService) certificateData(certificate *model.Certificate) (*dto.CertificateDTO, error) {
	course, err := s.courseRepo.FindByID(certificate.CourseID)
	if err != nil {
		return nil, fmt.Errorf("fetching course %d: %w", certificate.CourseID, err)
	}
	return s.certificateDataForCourse(certificate, course)
}

func (s *certificateService) certificateDataForCourse(certificate *model.Certificate, course *model.Course) (*dto.CertificateDTO, error) {
	student, err := s.userRepo.FindByID(certificate.UserID)
	if err != nil {
		return nil, fmt.Errorf("fetching student %d: %w", certificate.UserID, err)
	}
	instructor, err := s.userRepo.FindByID(course.InstructorID)
	if err != nil {
		return nil, fmt.Errorf("fetching instructor %d: %w", course.InstructorID, err)
	}

	return &dto.CertificateDTO{
		Eligible:          true,
		CertificateNumber: certificate.CertificateNumber,
		StudentName:       student.DisplayName(),
		InstructorName:    instructor.DisplayName(),
		CourseTitle:       course.Title,
		IssueDate:         certificate.IssuedAt.Format(issueDateLayout),
	}, nil
}

// newCertificateNumber builds a human-presentable, collision-resistant number:
// fixed prefix, millisecond timestamp, random suffix.
func newCertificateNumber() string {
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("CERT-%d-%s", time.Now().UnixMilli(), suffix)
}
