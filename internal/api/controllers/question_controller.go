package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"triviaquest/internal/models/request_models"
	"triviaquest/internal/services"
	"triviaquest/pkg/utils"
)

type QuestionController struct {
	questionService services.QuestionServiceInterface
}

func NewQuestionController(questionService services.QuestionServiceInterface) *QuestionController {
	return &QuestionController{
		questionService: questionService,
	}
}

// CreateQuestionHandler handles POST /api/question
func (qc *QuestionController) CreateQuestionHandler(c *gin.Context) {
	var req request_models.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	if strings.TrimSpace(req.Category) == "" {
		utils.RespondError(c, http.StatusBadRequest, "category is required and must be a non-empty string")
		return
	}

	question, err := qc.questionService.GenerateQuestion(c.Request.Context(), req.Category)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	// The question payload is the whole contract here, no envelope.
	c.JSON(http.StatusOK, question)
}

// CreateQuestionBatchHandler handles POST /api/question/batch
func (qc *QuestionController) CreateQuestionBatchHandler(c *gin.Context) {
	var req request_models.QuestionBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	if strings.TrimSpace(req.Category) == "" {
		utils.RespondError(c, http.StatusBadRequest, "category is required and must be a non-empty string")
		return
	}

	questions, err := qc.questionService.GenerateQuestions(c.Request.Context(), req.Category, req.Count)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, questions, "Questions generated successfully")
}
