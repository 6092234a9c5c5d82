package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/deskhub/helpdesk-service/internal/api/dto"
	"github.com/deskhub/helpdesk-service/internal/domain"
	"github.com/deskhub/helpdesk-service/internal/service"
	apperrors "github.com/deskhub/helpdesk-service/pkg/util/errorutil"
)

// CommentsHandler manages ticket comment endpoints.
type CommentsHandler struct {
	comments *service.CommentService
}

// NewCommentsHandler constructs handler.
func NewCommentsHandler(commentService *service.CommentService) *CommentsHandler {
	return &CommentsHandler{comments: commentService}
}

// ListForTicket GET /comments/ticket/:ticketId.
func (h *CommentsHandler) ListForTicket(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	comments, err := h.comments.ListForTicket(c.Context(), actor, c.Params("ticketId"))
	if err != nil {
		return err
	}
	items := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		items = append(items, commentResponse(&comments[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// AddComment POST /comments.
func (h *CommentsHandler) AddComment(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.TicketID == "" {
		return apperrors.NewValidationError("ticket_id is required", nil)
	}
	comment, err := h.comments.AddComment(c.Context(), actor, req.TicketID, req.Comment, req.IsInternal)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": commentResponse(comment)})
}

func commentResponse(comment *domain.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:         comment.ID,
		TicketID:   comment.TicketID,
		UserID:     comment.UserID,
		UserName:   comment.UserName,
		UserRole:   comment.UserRole,
		Comment:    comment.Body,
		IsInternal: comment.IsInternal,
		CreatedAt:  comment.CreatedAt,
	}
}
