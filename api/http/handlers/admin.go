package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/cvdesk/api/http/presenter"
	"github.com/artem13815/cvdesk/pkg/cv"
)

// AdminHandler exposes quota administration; routes are guarded by jwt.RequireAdmin.
type AdminHandler struct{ quotas cv.QuotaAdminUseCase }

func NewAdminHandler(quotas cv.QuotaAdminUseCase) *AdminHandler { return &AdminHandler{quotas: quotas} }

type quotaRequest struct {
	Max int `json:"max"`
}

// GetQuota returns a user's limit and usage.
// @Summary Get user quota
// @Tags    admin
// @Produce json
// @Security BearerAuth
// @Param   id path string true "user id"
// @Success 200 {object} cv.QuotaInfo
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /admin/users/{id}/quota [get]
func (h *AdminHandler) GetQuota(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	info, err := h.quotas.Get(c.Context(), id)
	if err != nil {
		return presenter.DomainError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, info)
}

// SetQuota changes a user's max CV count.
// @Summary Set user quota
// @Tags    admin
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   id    path string       true "user id"
// @Param   input body quotaRequest true "new limit"
// @Success 200 {object} cv.QuotaInfo
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /admin/users/{id}/quota [put]
func (h *AdminHandler) SetQuota(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	var req quotaRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	info, err := h.quotas.Set(c.Context(), id, req.Max)
	if err != nil {
		return presenter.DomainError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, info)
}
