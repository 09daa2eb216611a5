package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/cvdesk/api/http/presenter"
	"github.com/artem13815/cvdesk/pkg/cv"
	"github.com/artem13815/cvdesk/pkg/security/jwt"
)

type UploadHandler struct {
	useCase cv.UploadUseCase
}

func NewUploadHandler(useCase cv.UploadUseCase) *UploadHandler {
	return &UploadHandler{useCase: useCase}
}

type failedFile struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

type uploadResponse struct {
	Uploaded []cv.CV     `json:"uploaded"`
	Failed   []failedFile `json:"failed"`
}

// quotaErrorResponse is a refused batch together with the per-file problems found before the refusal.
type quotaErrorResponse struct {
	Message string       `json:"message"`
	Failed  []failedFile `json:"failed"`
}

func failedFiles(in []*cv.FileError) []failedFile {
	out := make([]failedFile, 0, len(in))
	for _, f := range in {
		out = append(out, failedFile{Name: f.Name, Error: f.Err.Error()})
	}
	return out
}

// Upload accepts a multipart batch of CV files.
// @Summary Upload CVs
// @Tags    uploads
// @Accept  multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param   files formData file true "CV files (pdf, doc, docx), repeatable"
// @Success 201 {object} uploadResponse "all files stored"
// @Success 207 {object} uploadResponse "some files failed"
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 409 {object} quotaErrorResponse
// @Failure 422 {object} uploadResponse "no file stored"
// @Router  /uploads [post]
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "multipart form expected")
	}
	headers := form.File["files"]
	files := make([]cv.UploadFile, 0, len(headers))
	for _, fh := range headers {
		fh := fh
		ct := fh.Header.Get(fiber.HeaderContentType)
		if ct == "" {
			ct = cv.MediaTypeFromName(fh.Filename)
		}
		files = append(files, cv.UploadFile{
			Name:        fh.Filename,
			ContentType: ct,
			Size:        fh.Size,
			Open:        func() (io.ReadCloser, error) { return fh.Open() },
		})
	}

	res, err := h.useCase.Upload(c.Context(), jwt.UserID(c), files)
	if err != nil {
		if errors.Is(err, cv.ErrQuotaExceeded) {
			return presenter.JSON(c, http.StatusConflict, quotaErrorResponse{Message: err.Error(), Failed: failedFiles(res.Failed)})
		}
		return presenter.DomainError(c, err)
	}
	out := uploadResponse{Uploaded: res.Uploaded, Failed: failedFiles(res.Failed)}
	if out.Uploaded == nil {
		out.Uploaded = []cv.CV{}
	}
	status := http.StatusCreated
	switch {
	case len(res.Uploaded) == 0:
		status = http.StatusUnprocessableEntity
	case len(res.Failed) > 0:
		status = http.StatusMultiStatus
	}
	return presenter.JSON(c, status, out)
}

// Remaining returns how many more CVs the caller may upload.
// @Summary Remaining upload slots
// @Tags    uploads
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]int
// @Router  /uploads/remaining [get]
func (h *UploadHandler) Remaining(c *fiber.Ctx) error {
	n, err := h.useCase.Remaining(c.Context(), jwt.UserID(c))
	if err != nil {
		return presenter.DomainError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"remaining": n})
}
