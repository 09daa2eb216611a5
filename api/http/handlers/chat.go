package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/cvdesk/api/http/presenter"
	"github.com/artem13815/cvdesk/pkg/chat"
	"github.com/artem13815/cvdesk/pkg/security/jwt"
)

type ChatHandler struct{ useCase chat.UseCase }

func NewChatHandler(useCase chat.UseCase) *ChatHandler { return &ChatHandler{useCase: useCase} }

type chatMessage struct {
	Message string `json:"message"`
}

// Ask answers a question about the caller's library.
// @Summary Chat
// @Tags    chat
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   input body chatMessage true "question"
// @Success 200 {object} chatMessage
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /chat [post]
func (h *ChatHandler) Ask(c *fiber.Ctx) error {
	var req chatMessage
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	answer, err := h.useCase.Ask(c.Context(), jwt.UserID(c), req.Message)
	if err != nil {
		if errors.Is(err, chat.ErrEmptyMessage) {
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		}
		return presenter.DomainError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, chatMessage{Message: answer})
}
