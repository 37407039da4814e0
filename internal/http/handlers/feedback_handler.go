package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skillchain/skillchain-backend/internal/dto"
	"github.com/skillchain/skillchain-backend/internal/http/handlers/common"
	"github.com/skillchain/skillchain-backend/internal/models"
	"github.com/skillchain/skillchain-backend/internal/service"
)

// FeedbackHandler отвечает за отзывы участников.
type FeedbackHandler struct {
	feedback *service.FeedbackService
}

// NewFeedbackHandler создаёт новый хэндлер.
func NewFeedbackHandler(feedback *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

// Submit POST /feedback
func (h *FeedbackHandler) Submit(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req dto.SubmitFeedbackRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, "to_id, rating и text обязательны")
		return
	}

	toID, err := uuid.Parse(req.ToID)
	if err != nil {
		common.RespondBadRequest(c, "неверный to_id")
		return
	}

	entry, err := h.feedback.SubmitFeedback(c.Request.Context(), userID, service.SubmitFeedbackInput{
		ToID:     toID,
		Rating:   req.Rating,
		Category: req.Category,
		Text:     req.Text,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// ListReceived GET /feedback/received
func (h *FeedbackHandler) ListReceived(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	h.respondUserFeedback(c, userID)
}

// ListGiven GET /feedback/given
func (h *FeedbackHandler) ListGiven(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	feedback, err := h.feedback.ListGiven(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	if feedback == nil {
		feedback = []models.Feedback{}
	}

	c.JSON(http.StatusOK, gin.H{"feedback": feedback})
}

// ListUserFeedback GET /users/:id/feedback
func (h *FeedbackHandler) ListUserFeedback(c *gin.Context) {
	userID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, "неверный user_id")
		return
	}

	h.respondUserFeedback(c, userID)
}

func (h *FeedbackHandler) respondUserFeedback(c *gin.Context, userID uuid.UUID) {
	feedback, average, err := h.feedback.ListReceived(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	if feedback == nil {
		feedback = []models.Feedback{}
	}

	c.JSON(http.StatusOK, dto.FeedbackListResponse{
		Feedback:      feedback,
		AverageRating: service.FormatRating(average),
		Count:         len(feedback),
	})
}
