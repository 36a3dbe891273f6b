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

// CourseService covers catalog authoring and reading: courses, sections,
// lessons, and the assembled course outline.
type CourseService interface {
	CreateCourse(principal identity.Identity, req dto.CourseCreateDTO) (*dto.CourseResponseDTO, error)
	UpdateCourse(principal identity.Identity, courseID uint, req dto.CourseUpdateDTO) (*dto.CourseResponseDTO, error)
	PublishCourse(principal identity.Identity, courseID uint) (*dto.CourseResponseDTO, error)
	DeleteCourse(principal identity.Identity, courseID uint) error
	ListCourses(principal identity.Identity, tag string) ([]dto.CourseResponseDTO, error)
	AddSection(principal identity.Identity, courseID uint, req dto.SectionCreateDTO) (*model.Section, error)
	AddLesson(principal identity.Identity, courseID uint, req dto.LessonCreateDTO) (*dto.LessonResponseDTO, error)
	GetCourseOutline(principal identity.Identity, courseID uint) (*dto.CourseOutlineDTO, error)
}

type courseService struct {
	courseRepo    repository.CourseRepository
	sectionRepo   repository.SectionRepository
	lessonRepo    repository.LessonRepository
	quizRepo      repository.QuizRepository
	enrollmentSvc EnrollmentService
}

func NewCourseService(
	courseRepo repository.CourseRepository,
	sectionRepo repository.SectionRepository,
	lessonRepo repository.LessonRepository,
	quizRepo repository.QuizRepository,
	enrollmentSvc EnrollmentService,
) CourseService {
	return &courseService{
		courseRepo:    courseRepo,
		sectionRepo:   sectionRepo,
		lessonRepo:    lessonRepo,
		quizRepo:      quizRepo,
		enrollmentSvc: enrollmentSvc,
	}
}

func (s *courseService) CreateCourse(principal identity.Identity, req dto.CourseCreateDTO) (*dto.CourseResponseDTO, error) {
	if principal.Role != identity.RoleInstructor && !principal.IsAdmin() {
		return nil, ErrAccessDenied
	}

	course := model.Course{
		InstructorID: principal.UserID,
		Title:        req.Title,
		Description:  req.Description,
		Tags:         req.Tags,
		IsPublished:  false,
	}
	if err := s.courseRepo.Create(&course); err != nil {
		log.Error().Err(err).Msg("Failed to create course")
		return nil, fmt.Errorf("creating course: %w", err)
	}

	var resp dto.CourseResponseDTO
	if err := copier.Copy(&resp, &course); err != nil {
		return nil, fmt.Errorf("preparing course response: %w", err)
	}
	return &resp, nil
}

// findOwnedCourse loads the course and enforces the owner-or-admin rule shared
// by every mutation.
func (s *courseService) findOwnedCourse(principal identity.Identity, courseID uint) (*model.Course, error) {
	course, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("course %d: %w", courseID, ErrNotFound)
		}
		return nil, fmt.Errorf("fetching course %d: %w", courseID, err)
	}
	if !principal.IsOwnerOrAdmin(course.InstructorID) {
		return nil, ErrAccessDenied
	}
	return course, nil
}

func (s *courseService) UpdateCourse(principal identity.Identity, courseID uint, req dto.CourseUpdateDTO) (*dto.CourseResponseDTO, error) {
	course, err := s.findOwnedCourse(principal, courseID)
	if err != nil {
		return nil, err
	}

	course.Title = req.Title
	course.Description = req.Description
	course.Tags = req.Tags
	if err := s.courseRepo.Update(course); err != nil {
		log.Error().Err(err).Uint("courseID", courseID).Msg("Failed to update course")
		return nil, fmt.Errorf("updating course: %w", err)
	}

	var resp dto.CourseResponseDTO
	if err := copier.Copy(&resp, course); err != nil {
		return nil, fmt.Errorf("preparing course response: %w", err)
	}
	return &resp, nil
}

func (s *courseService) PublishCourse(principal identity.Identity, courseID uint) (*dto.CourseResponseDTO, error) {
	course, err := s.findOwnedCourse(principal, courseID)
	if err != nil {
		return nil, err
	}

	course.IsPublished = true
	if err := s.courseRepo.Update(course); err != nil {
		log.Error().Err(err).Uint("courseID", courseID).Msg("Failed to publish course")
		return nil, fmt.Errorf("publishing course: %w", err)
	}

	var resp dto.CourseResponseDTO
	if err := copier.Copy(&resp, course); err != nil {
		return nil, fmt.Errorf("preparing course response: %w", err)
	}
	return &resp, nil
}

func (s *courseService) DeleteCourse(principal identity.Identity, courseID uint) error {
	if _, err := s.findOwnedCourse(principal, courseID); err != nil {
		return err
	}
	if err := s.courseRepo.DeleteCascade(courseID); err != nil {
		log.Error().Err(err).Uint("courseID", courseID).Msg("Course cascade delete failed")
		return fmt.Errorf("deleting course %d: %w", courseID, err)
	}
	log.Info().Uint("courseID", courseID).Msg("Course deleted")
	return nil
}

func (s *courseService) ListCourses(principal identity.Identity, tag string) ([]dto.CourseResponseDTO, error) {
	publishedOnly := principal.Role == identity.RoleStudent
	courses, err := s.courseRepo.FindAll(publishedOnly, tag)
	if err != nil {
		return nil, fmt.Errorf("listing courses: %w", err)
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

func (s *courseService) AddSection(principal identity.Identity, courseID uint, req dto.SectionCreateDTO) (*model.Section, error) {
	if _, err := s.findOwnedCourse(principal, courseID); err != nil {
		return nil, err
	}

	section := model.Section{
		CourseID:  courseID,
		Title:     req.Title,
		SortOrder: req.SortOrder,
	}
	if err := s.sectionRepo.Create(&section); err != nil {
		log.Error().Err(err).Uint("courseID", courseID).Msg("Failed to create section")
		return nil, fmt.Errorf("creating section: %w", err)
	}
	return &section, nil
}

func (s *courseService) AddLesson(principal identity.Identity, courseID uint, req dto.LessonCreateDTO) (*dto.LessonResponseDTO, error) {
	if _, err := s.findOwnedCourse(principal, courseID); err != nil {
		return nil, err
	}

	// A lesson may name a section, but it must be one of this course's sections.
	if req.SectionID != nil {
		section, err := s.sectionRepo.FindByID(*req.SectionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("section %d: %w", *req.SectionID, ErrNotFound)
			}
			return nil, fmt.Errorf("fetching section %d: %w", *req.SectionID, err)
		}
		if section.CourseID != courseID {
			return nil, fmt.Errorf("section %d belongs to another course: %w", section.ID, ErrInvalidState)
		}
	}

	lesson := model.Lesson{
		CourseID:  courseID,
		SectionID: req.SectionID,
		Title:     req.Title,
		Content:   req.Content,
		VideoURL:  req.VideoURL,
		SortOrder: req.SortOrder,
	}
	if err := s.lessonRepo.Create(&lesson); err != nil {
		log.Error().Err(err).Uint("courseID", courseID).Msg("Failed to create lesson")
		return nil, fmt.Errorf("creating lesson: %w", err)
	}

	var resp dto.LessonResponseDTO
	if err := copier.Copy(&resp, &lesson); err != nil {
		return nil, fmt.Errorf("preparing lesson response: %w", err)
	}
	return &resp, nil
}

// GetCourseOutline assembles the structural view a learner consumes: ordered
// sections with their ordered lessons and quiz attachment, plus any legacy
// lessons that never got a section.
func (s *courseService) GetCourseOutline(principal identity.Identity, courseID uint) (*dto.CourseOutlineDTO, error) {
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

	sections, err := s.sectionRepo.FindByCourseID(courseID)
	if err != nil {
		return nil, fmt.Errorf("fetching sections: %w", err)
	}
	lessons, err := s.lessonRepo.FindByCourseID(courseID)
	if err != nil {
		return nil, fmt.Errorf("fetching lessons: %w", err)
	}

	lessonsBySection := make(map[uint][]dto.LessonResponseDTO)
	var ungrouped []dto.LessonResponseDTO
	for _, lesson := range lessons {
		var lessonDTO dto.LessonResponseDTO
		if err := copier.Copy(&lessonDTO, &lesson); err != nil {
			log.Error().Err(err).Uint("lessonID", lesson.ID).Msg("Failed to copy lesson to DTO")
			continue
		}
		if lesson.SectionID == nil {
			ungrouped = append(ungrouped, lessonDTO)
			continue
		}
		lessonsBySection[*lesson.SectionID] = append(lessonsBySection[*lesson.SectionID], lessonDTO)
	}

	outline := dto.CourseOutlineDTO{UngroupedLessons: ungrouped}
	if err := copier.Copy(&outline.Course, course); err != nil {
		return nil, fmt.Errorf("preparing course response: %w", err)
	}

	outline.Sections = make([]dto.SectionOutlineDTO, 0, len(sections))
	for _, section := range sections {
		sectionDTO := dto.SectionOutlineDTO{
			ID:        section.ID,
			Title:     section.Title,
			SortOrder: section.SortOrder,
			Lessons:   lessonsBySection[section.ID],
		}
		if sectionDTO.Lessons == nil {
			sectionDTO.Lessons = []dto.LessonResponseDTO{}
		}
		quiz, err := s.quizRepo.FindBySectionID(section.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("fetching quiz for section %d: %w", section.ID, err)
		}
		if quiz != nil {
			sectionDTO.HasQuiz = true
			sectionDTO.QuizID = &quiz.ID
		}
		outline.Sections = append(outline.Sections, sectionDTO)
	}
	return &outline, nil
}
