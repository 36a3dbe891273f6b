package instructor

import (
	"net/http"

	"github.com/Mitesh-Saste/OLP/internal/dto"
	"github.com/Mitesh-Saste/OLP/internal/middleware"
	"github.com/Mitesh-Saste/OLP/internal/service"
	"github.com/gin-gonic/gin"
)

type QuizController struct {
	quizService service.QuizService
}

func NewQuizController(quizService service.QuizService) *QuizController {
	return &QuizController{quizService: quizService}
}

// CreateQuiz godoc
// @Summary Attach a quiz to a section
// @Description A section carries at most one quiz; delete the existing one before recreating.
// @Tags instructor
// @Accept json
// @Produce json
// @Param section_id path int true "Section ID"
// @Param quiz body dto.QuizCreateDTO true "Quiz"
// @Success 201 {object} dto.QuizResponseDTO
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /instructor/sections/{section_id}/quiz [post]
func (ctrl *QuizController) CreateQuiz(c *gin.Context) {
	sectionID, ok := pathID(c, "section_id")
	if !ok {
		return
	}
	var req dto.QuizCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := ctrl.quizService.CreateQuiz(middleware.Principal(c), sectionID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// DeleteQuiz godoc
// @Summary Delete a section's quiz
// @Tags instructor
// @Produce json
// @Param section_id path int true "Section ID"
// @Success 204
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /instructor/sections/{section_id}/quiz [delete]
func (ctrl *QuizController) DeleteQuiz(c *gin.Context) {
	sectionID, ok := pathID(c, "section_id")
	if !ok {
		return
	}
	if err := ctrl.quizService.DeleteQuiz(middleware.Principal(c), sectionID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
