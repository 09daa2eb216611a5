package handlers

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/cvdesk/api/http/presenter"
	"github.com/artem13815/cvdesk/pkg/cv"
	"github.com/artem13815/cvdesk/pkg/export"
	"github.com/artem13815/cvdesk/pkg/security/jwt"
)

// Exporter renders a filtered CV list as a workbook.
type Exporter interface {
	Export(ctx context.Context, ownerID uuid.UUID, c cv.Criteria, w io.Writer) error
}

// CVHandler serves the owner's CV library.
type CVHandler struct {
	library  cv.LibraryUseCase
	exporter Exporter
}

func NewCVHandler(library cv.LibraryUseCase, exporter Exporter) *CVHandler {
	return &CVHandler{library: library, exporter: exporter}
}

func criteriaFromQuery(c *fiber.Ctx) cv.Criteria {
	return cv.Criteria{
		Q:          strings.TrimSpace(c.Query("q")),
		Tag:        strings.TrimSpace(c.Query("tag")),
		Skill:      strings.TrimSpace(c.Query("skill")),
		Experience: strings.TrimSpace(c.Query("experience")),
		Sort:       c.Query("sort"),
	}
}

// List returns the caller's CVs filtered by query parameters.
// @Summary List CVs
// @Tags    cvs
// @Produce json
// @Security BearerAuth
// @Param   q          query string false "substring of file name or text"
// @Param   tag        query string false "tag name"
// @Param   skill      query string false "skill name"
// @Param   experience query string false "years: min-max, min or min+"
// @Param   sort       query string false "newest | oldest | name_az | name_za"
// @Param   limit      query int    false "page size (default 20)"
// @Param   offset     query int    false "offset"
// @Success 200 {object} cv.Page
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /cvs [get]
func (h *CVHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	page, err := h.library.Search(c.Context(), jwt.UserID(c), criteriaFromQuery(c), limit, offset)
	if err != nil {
		return presenter.DomainError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, page)
}

// Recent returns the latest uploads.
// @Summary Recent CVs
// @Tags    cvs
// @Produce json
// @Security BearerAuth
// @Success 200 {array} cv.CV
// @Router  /cvs/recent [get]
func (h *CVHandler) Recent(c *fiber.Ctx) error {
	items, err := h.library.Recent(c.Context(), jwt.UserID(c))
	if err != nil {
		return presenter.DomainError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// Filters returns the tag and skill options for the filter UI.
// @Summary Filter facets
// @Tags    cvs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} cv.Facets
// @Router  /cvs/filters [get]
func (h *CVHandler) Filters(c *fiber.Ctx) error {
	facets, err := h.library.Facets(c.Context(), jwt.UserID(c))
	if err != nil {
		return presenter.DomainError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, facets)
}

func parseID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	return id, err == nil
}

// Get returns one CV with its parsed profile.
// @Summary Get CV
// @Tags    cvs
// @Produce json
// @Security BearerAuth
// @Param   id path string true "CV id"
// @Success 200 {object} cv.Detail
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /cvs/{id} [get]
func (h *CVHandler) Get(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	detail, err := h.library.Get(c.Context(), jwt.UserID(c), id)
	if err != nil {
		return presenter.DomainError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, detail)
}

// Download streams the original file.
// @Summary Download CV file
// @Tags    cvs
// @Produce octet-stream
// @Security BearerAuth
// @Param   id path string true "CV id"
// @Success 200 {file} file
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /cvs/{id}/file [get]
func (h *CVHandler) Download(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	item, data, err := h.library.Open(c.Context(), jwt.UserID(c), id)
	if err != nil {
		return presenter.DomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, item.ContentType)
	c.Attachment(item.FileName)
	return c.Send(data)
}

// Delete removes a CV and frees its upload slot.
// @Summary Delete CV
// @Tags    cvs
// @Security BearerAuth
// @Param   id path string true "CV id"
// @Success 204
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /cvs/{id} [delete]
func (h *CVHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	if err := h.library.Delete(c.Context(), jwt.UserID(c), id); err != nil {
		return presenter.DomainError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// Export downloads the filtered list as XLSX.
// @Summary Export CVs
// @Tags    cvs
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} file
// @Router  /cvs/export [get]
func (h *CVHandler) Export(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.exporter.Export(c.Context(), jwt.UserID(c), criteriaFromQuery(c), &buf); err != nil {
		return presenter.DomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, export.ContentType)
	c.Attachment("cvs.xlsx")
	return c.Send(buf.Bytes())
}
