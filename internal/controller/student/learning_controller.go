package student

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

// LearningController serves the learner-facing flow: browsing, enrolling,
// consuming lessons, taking quizzes, and collecting the certificate.
type LearningController struct {
	courseService      service.CourseService
	enrollmentService  service.EnrollmentService
	progressService    service.ProgressService
	quizService        service.QuizService
	certificateService service.CertificateService
}

func NewLearningController(
	courseService service.CourseService,
	enrollmentService service.EnrollmentService,
	progressService service.ProgressService,
	quizService service.QuizService,
	certificateService service.CertificateService,
) *LearningController {
	return &LearningController{
		courseService:      courseService,
		enrollmentService:  enrollmentService,
		progressService:    progressService,
		quizService:        quizService,
		certificateService: certificateService,
	}
}

// ListCourses godoc
// @Summary List courses
// @Description Students see published courses only; instructors and admins see all.
// @Tags student
// @Produce json
// @Param tag query string false "Filter by tag"
// @Success 200 {array} dto.CourseResponseDTO
// @Router /courses [get]
func (ctrl *LearningController) ListCourses(c *gin.Context) {
	resp, err := ctrl.courseService.ListCourses(middleware.Principal(c), c.Query("tag"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetCourseOutline godoc
// @Summary Course outline
// @Tags student
// @Produce json
// @Param course_id path int true "Course ID"
// @Success 200 {object} dto.CourseOutlineDTO
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{course_id}/outline [get]
func (ctrl *LearningController) GetCourseOutline(c *gin.Context) {
	courseID, ok := pathID(c, "course_id")
	if !ok {
		return
	}
	resp, err := ctrl.courseService.GetCourseOutline(middleware.Principal(c), courseID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Enroll godoc
// @Summary Enroll in a published course
// @Tags student
// @Produce json
// @Param course_id path int true "Course ID"
// @Success 201
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /courses/{course_id}/enroll [post]
func (ctrl *LearningController) Enroll(c *gin.Context) {
	courseID, ok := pathID(c, "course_id")
	if !ok {
		return
	}
	if err := ctrl.enrollmentService.Enroll(middleware.Principal(c), courseID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

// ListEnrolledCourses godoc
// @Summary Courses the caller is enrolled in
// @Tags student
// @Produce json
// @Success 200 {array} dto.CourseResponseDTO
// @Router /my-courses [get]
func (ctrl *LearningController) ListEnrolledCourses(c *gin.Context) {
	resp, err := ctrl.enrollmentService.ListEnrolledCourses(middleware.Principal(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MarkLessonComplete godoc
// @Summary Mark a lesson completed
// @Description Idempotent: a second call is a no-op success.
// @Tags student
// @Produce json
// @Param lesson_id path int true "Lesson ID"
// @Success 204
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /lessons/{lesson_id}/complete [post]
func (ctrl *LearningController) MarkLessonComplete(c *gin.Context) {
	lessonID, ok := pathID(c, "lesson_id")
	if !ok {
		return
	}
	if err := ctrl.progressService.MarkLessonComplete(middleware.Principal(c), lessonID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetCourseProgress godoc
// @Summary Course completion percentage
// @Tags student
// @Produce json
// @Param course_id path int true "Course ID"
// @Success 200 {object} dto.CourseProgressDTO
// @Failure 403 {object} dto.ErrorResponse
// @Router /courses/{course_id}/progress [get]
func (ctrl *LearningController) GetCourseProgress(c *gin.Context) {
	courseID, ok := pathID(c, "course_id")
	if !ok {
		return
	}
	resp, err := ctrl.progressService.CourseProgress(middleware.Principal(c), courseID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetQuiz godoc
// @Summary Quiz for a section
// @Tags student
// @Produce json
// @Param section_id path int true "Section ID"
// @Success 200 {object} dto.QuizResponseDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /sections/{section_id}/quiz [get]
func (ctrl *LearningController) GetQuiz(c *gin.Context) {
	sectionID, ok := pathID(c, "section_id")
	if !ok {
		return
	}
	resp, err := ctrl.quizService.GetQuiz(middleware.Principal(c), sectionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SubmitQuiz godoc
// @Summary Submit quiz answers
// @Description Grades the submission, records an immutable attempt, and returns the result.
// @Tags student
// @Accept json
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Param submission body dto.QuizSubmitDTO true "Answers, question id to option id"
// @Success 200 {object} dto.QuizResultDTO
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /quizzes/{quiz_id}/submit [post]
func (ctrl *LearningController) SubmitQuiz(c *gin.Context) {
	quizID, ok := pathID(c, "quiz_id")
	if !ok {
		return
	}
	var req dto.QuizSubmitDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := ctrl.quizService.SubmitQuiz(middleware.Principal(c), quizID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetQuizStatus godoc
// @Summary Latest attempt for a quiz
// @Tags student
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Success 200 {object} dto.QuizStatusDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /quizzes/{quiz_id}/status [get]
func (ctrl *LearningController) GetQuizStatus(c *gin.Context) {
	quizID, ok := pathID(c, "quiz_id")
	if !ok {
		return
	}
	resp, err := ctrl.quizService.QuizStatus(middleware.Principal(c), quizID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CheckCertificate godoc
// @Summary Check eligibility and issue the certificate
// @Description Returns the certificate when every lesson is completed and every quiz passed; otherwise an ineligible result with a reason.
// @Tags student
// @Produce json
// @Param course_id path int true "Course ID"
// @Success 200 {object} dto.CertificateDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{course_id}/certificate/check [post]
func (ctrl *LearningController) CheckCertificate(c *gin.Context) {
	courseID, ok := pathID(c, "course_id")
	if !ok {
		return
	}
	resp, err := ctrl.certificateService.CheckAndIssue(middleware.Principal(c), courseID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetCertificate godoc
// @Summary Fetch an issued certificate
// @Tags student
// @Produce json
// @Param course_id path int true "Course ID"
// @Success 200 {object} dto.CertificateDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{course_id}/certificate [get]
func (ctrl *LearningController) GetCertificate(c *gin.Context) {
	courseID, ok := pathID(c, "course_id")
	if !ok {
		return
	}
	resp, err := ctrl.certificateService.GetCertificate(middleware.Principal(c), courseID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

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
