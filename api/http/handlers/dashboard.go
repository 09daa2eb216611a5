package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/cvdesk/api/http/presenter"
	"github.com/artem13815/cvdesk/pkg/cv"
	"github.com/artem13815/cvdesk/pkg/security/jwt"
)

type DashboardHandler struct{ useCase cv.DashboardUseCase }

func NewDashboardHandler(useCase cv.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{useCase: useCase}
}

// Stats returns the caller's dashboard figures.
// @Summary Dashboard
// @Tags    dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} cv.Stats
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /dashboard [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.useCase.Stats(c.Context(), jwt.UserID(c))
	if err != nil {
		return presenter.DomainError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, stats)
}
