package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"qaforum/api/internal/middleware"
)

type answerRequest struct {
	Answer string `json:"answer"`
}

type answerDetailsResponse struct {
	ID              string `json:"id"`
	QuestionContent string `json:"questionContent"`
	AnswerContent   string `json:"answerContent"`
}

func (h HandlerSet) CreateAnswer(c *gin.Context) {
	var req answerRequest
	// a malformed body leaves Answer empty and fails validation in the service
	_ = c.ShouldBindJSON(&req)

	answer, err := h.services.Answers.Create(c.Request.Context(), middleware.AccessToken(c), c.Param("questionId"), req.Answer)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, statusResponse{ID: answer.ID, Status: "ANSWER CREATED"})
}

func (h HandlerSet) EditAnswer(c *gin.Context) {
	answer, err := h.services.Answers.Edit(c.Request.Context(), middleware.AccessToken(c), c.Param("answerId"), bindContent(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, statusResponse{ID: answer.ID, Status: "ANSWER EDITED"})
}

func (h HandlerSet) DeleteAnswer(c *gin.Context) {
	answer, err := h.services.Answers.Delete(c.Request.Context(), middleware.AccessToken(c), c.Param("answerId"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, statusResponse{ID: answer.ID, Status: "ANSWER DELETED"})
}

func (h HandlerSet) ListAnswers(c *gin.Context) {
	answers, err := h.services.Answers.ListByQuestion(c.Request.Context(), middleware.AccessToken(c), c.Param("questionId"))
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := make([]answerDetailsResponse, 0, len(answers))
	for _, a := range answers {
		resp = append(resp, answerDetailsResponse{
			ID:              a.ID,
			QuestionContent: a.QuestionContent,
			AnswerContent:   a.Content,
		})
	}
	c.JSON(http.StatusOK, resp)
}
