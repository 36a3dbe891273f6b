package instructor

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Mitesh-Saste/OLP/internal/dto"
	"github.com/Mitesh-Saste/OLP/internal/middleware"
	"github.com/Mitesh-Saste/OLP/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type CourseController struct {
	courseService service.CourseService
}

func NewCourseController(courseService service.CourseService) *CourseController {
	return &CourseController{courseService: courseService}
}

// CreateCourse godoc
// @Summary Create a course
// @Description Creates an unpublished course owned by the calling instructor.
// @Tags instructor
// @Accept json
// @Produce json
// @Param course body dto.CourseCreateDTO true "Course"
// @Success 201 {object} dto.CourseResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /instructor/courses [post]
func (ctrl *CourseController) CreateCourse(c *gin.Context) {
	var req dto.CourseCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := ctrl.courseService.CreateCourse(middleware.Principal(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateCourse godoc
// @Summary Update course metadata
// @Tags instructor
// @Accept json
// @Produce json
// @Param course_id path int true "Course ID"
// @Param course body dto.CourseUpdateDTO true "Course"
// @Success 200 {object} dto.CourseResponseDTO
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /instructor/courses/{course_id} [put]
func (ctrl *CourseController) UpdateCourse(c *gin.Context) {
	courseID, ok := pathID(c, "course_id")
	if !ok {
		return
	}
	var req dto.CourseUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := ctrl.courseService.UpdateCourse(middleware.Principal(c), courseID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PublishCourse godoc
// @Summary Publish a course
// @Tags instructor
// @Produce json
// @Param course_id path int true "Course ID"
// @Success 200 {object} dto.CourseResponseDTO
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /instructor/courses/{course_id}/publish [post]
func (ctrl *CourseController) PublishCourse(c *gin.Context) {
	courseID, ok := pathID(c, "course_id")
	if !ok {
		return
	}
	resp, err := ctrl.courseService.PublishCourse(middleware.Principal(c), courseID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteCourse godoc
// @Summary Delete a course and everything it owns
// @Tags instructor
// @Produce json
// @Param course_id path int true "Course ID"
// @Success 204
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /instructor/courses/{course_id} [delete]
func (ctrl *CourseController) DeleteCourse(c *gin.Context) {
	courseID, ok := pathID(c, "course_id")
	if !ok {
		return
	}
	if err := ctrl.courseService.DeleteCourse(middleware.Principal(c), courseID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddSection godoc
// @Summary Add a section to a course
// @Tags instructor
// @Accept json
// @Produce json
// @Param course_id path int true "Course ID"
// @Param section body dto.SectionCreateDTO true "Section"
// @Success 201 {object} model.Section
// @Failure 403 {object} dto.ErrorResponse
// @Router /instructor/courses/{course_id}/sections [post]
func (ctrl *CourseController) AddSection(c *gin.Context) {
	courseID, ok := pathID(c, "course_id")
	if !ok {
		return
	}
	var req dto.SectionCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	section, err := ctrl.courseService.AddSection(middleware.Principal(c), courseID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, section)
}

// AddLesson godoc
// @Summary Add a lesson to a course
// @Tags instructor
// @Accept json
// @Produce json
// @Param course_id path int true "Course ID"
// @Param lesson body dto.LessonCreateDTO true "Lesson"
// @Success 201 {object} dto.LessonResponseDTO
// @Failure 403 {object} dto.ErrorResponse
// @Router /instructor/courses/{course_id}/lessons [post]
func (ctrl *CourseController) AddLesson(c *gin.Context) {
	courseID, ok := pathID(c, "course_id")
	if !ok {
		return
	}
	var req dto.LessonCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := ctrl.courseService.AddLesson(middleware.Principal(c), courseID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// respondServiceError maps the service sentinels onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrAccessDenied):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrNotPublished),
		errors.Is(err, service.ErrAlreadyEnrolled),
		errors.Is(err, service.ErrDuplicateQuiz),
		errors.Is(err, service.ErrInvalidState):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled service error")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}
}
