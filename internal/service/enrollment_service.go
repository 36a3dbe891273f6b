package service

import (
	"errors"
	"fmt"

	"github.com/Mitesh-Saste/OLP/internal/dto"
	"github.com/Mitesh-Saste/OLP/internal/identity"
	"github.com/Mitesh-Saste/OLP/internal/model"
	"github.com/Mitesh-Saste/OLP/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// EnrollmentService is the gate in front of course content: it creates
// enrollments and decides whether a principal may access a course at all.
type EnrollmentService interface {
	Enroll(principal identity.Identity, courseID uint) error
	CanAccess(principal identity.Identity, course *model.Course) error
	ListEnrolledCourses(principal identity.Identity) ([]dto.CourseResponseDTO, error)
}

type enrollmentService struct {
	enrollmentRepo repository.EnrollmentRepository
	courseRepo     repository.CourseRepository
}

func NewEnrollmentService(enrollmentRepo repository.EnrollmentRepository, courseRepo repository.CourseRepository) EnrollmentService {
	return &enrollmentService{enrollmentRepo: enrollmentRepo, courseRepo: courseRepo}
}

// Enroll creates the (user, course) enrollment row. A second call fails with
// ErrAlreadyEnrolled rather than silently succeeding; the unique index on the
// row is the authoritative guard, the existence check is only an early out.
func (s *enrollmentService) Enroll(principal identity.Identity, courseID uint) error {
	course, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("course %d: %w", courseID, ErrNotFound)
		}
		return fmt.Errorf("fetching course %d: %w", courseID, err)
	}

	if !course.IsPublished {
		return ErrNotPublished
	}

	exists, err := s.enrollmentRepo.Exists(principal.UserID, courseID)
	if err != nil {
		return fmt.Errorf("checking enrollment: %w", err)
	}
	if exists {
		return ErrAlreadyEnrolled
	}

	enrollment := model.Enrollment{UserID: principal.UserID, CourseID: courseID}
	if err := s.enrollmentRepo.Create(&enrollment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyEnrolled
		}
		log.Error().Err(err).Uint("courseID", courseID).Uint("userID", principal.UserID).Msg("Failed to create enrollment")
		return fmt.Errorf("creating enrollment: %w", err)
	}
	return nil
}

// CanAccess implements the access rule for course content: admins and the
// course's instructor always pass; a student needs a published course plus an
// enrollment row.
func (s *enrollmentService) CanAccess(principal identity.Identity, course *model.Course) error {
	if principal.IsOwnerOrAdmin(course.InstructorID) {
		return nil
	}
	if !course.IsPublished {
		return ErrAccessDenied
	}
	enrolled, err := s.enrollmentRepo.Exists(principal.UserID, course.ID)
	if err != nil {
		return fmt.Errorf("checking enrollment: %w", err)
	}
	if !enrolled {
		return ErrAccessDenied
	}
	return nil
}

func (s *enrollmentService) ListEnrolledCourses(principal identity.Identity) ([]dto.CourseResponseDTO, error) {
	courseIDs, err := s.enrollmentRepo.CourseIDsByUserID(principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("listing enrollments: %w", err)
	}
	courses, err := s.courseRepo.FindByIDs(courseIDs)
	if err != nil {
		return nil, fmt.Errorf("fetching enrolled courses: %w", err)
	}

	dtos := make([]dto.CourseResponseDTO, 0, len(courses))
	for _, course := range courses {
		var resp dto.CourseResponseDTO
		if err := copier.Copy(&resp, &course); err != nil {
			log.Error().Err(err).Uint("courseID", course.ID).Msg("Failed to copy course to DTO")
			continue
		}
		dtos = append(dtos, resp)
	}
	return dtos, nil
}
