package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"qaforum/api/internal/middleware"
	"qaforum/api/internal/models"
)

type contentRequest struct {
	Content string `json:"content"`
}

type questionResponse struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// bindContent reads the content field of the body. An unreadable body
// yields empty content, which the service rejects after authenticating.
func bindContent(c *gin.Context) string {
	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return ""
	}
	return req.Content
}

func toQuestionResponses(questions []models.Question) []questionResponse {
	resp := make([]questionResponse, 0, len(questions))
	for _, q := range questions {
		resp = append(resp, questionResponse{ID: q.ID, Content: q.Content})
	}
	return resp
}

func (h HandlerSet) CreateQuestion(c *gin.Context) {
	question, err := h.services.Questions.Create(c.Request.Context(), middleware.AccessToken(c), bindContent(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, statusResponse{ID: question.ID, Status: "QUESTION CREATED"})
}

func (h HandlerSet) ListQuestions(c *gin.Context) {
	questions, err := h.services.Questions.ListAll(c.Request.Context(), middleware.AccessToken(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toQuestionResponses(questions))
}

func (h HandlerSet) ListUserQuestions(c *gin.Context) {
	questions, err := h.services.Questions.ListByUser(c.Request.Context(), middleware.AccessToken(c), c.Param("userId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toQuestionResponses(questions))
}

func (h HandlerSet) EditQuestion(c *gin.Context) {
	question, err := h.services.Questions.Edit(c.Request.Context(), middleware.AccessToken(c), c.Param("questionId"), bindContent(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, statusResponse{ID: question.ID, Status: "QUESTION EDITED"})
}

func (h HandlerSet) DeleteQuestion(c *gin.Context) {
	question, err := h.services.Questions.Delete(c.Request.Context(), middleware.AccessToken(c), c.Param("questionId"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, statusResponse{ID: question.ID, Status: "QUESTION DELETED"})
}
