package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"careerprep/middleware"
	"careerprep/models"
	"careerprep/services"
	"careerprep/store"
)

// GetQuestion serves a random question, gated by the daily quota.
// Fetching does not consume a credit; submitting the answer does.
// The payload never includes the correct answer or the explanation.
func (h *Handler) GetQuestion(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	dayStart := services.DayStart(h.now())
	used, err := h.store.CountUsageSince(user.ID, models.UsageAptitude, dayStart)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if used >= services.AptitudeDailyLimit {
		quotaExceeded(c, &services.QuotaExceededError{Limit: services.AptitudeDailyLimit, Used: used})
		return
	}

	question, err := h.store.RandomQuestion()
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No questions available"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         question.ID,
		"question":   question.Question,
		"options":    question.Options,
		"category":   question.Category,
		"difficulty": question.Difficulty,
	})
}

// AnswerInput uses pointers so that index 0 survives the required
// check; a zero selectedAnswer is a legitimate submission.
type AnswerInput struct {
	QuestionID     *int `json:"questionId"`
	SelectedAnswer *int `json:"selectedAnswer"`
}

// SubmitAnswer evaluates a submission and appends one usage-log row
// whether or not the answer was correct.
func (h *Handler) SubmitAnswer(c *gin.Context) {
	var input AnswerInput
	if err := c.ShouldBindJSON(&input); err != nil || input.QuestionID == nil || input.SelectedAnswer == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "questionId and selectedAnswer are required"})
		return
	}

	question, err := h.store.QuestionByID(*input.QuestionID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	result := services.EvaluateAnswer(question, *input.SelectedAnswer)

	user, _ := middleware.CurrentUser(c)
	if err := h.store.RecordUsage(user.ID, models.UsageAptitude); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, result)
}
