package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/presentai/presentai/internal/core/domain"
)

// degradedHeader is set on downloads that contain placeholders.
const degradedHeader = "X-Presentai-Degraded"

// ExportRequest is the body of POST /api/presentations/:id/export.
type ExportRequest struct {
	FileName string            `json:"fileName"`
	Theme    string            `json:"theme"`
	Colors   map[string]string `json:"colors"`
}

// ExportResponse is the export result. Data is the base64 archive.
type ExportResponse struct {
	Success     bool                `json:"success"`
	Data        string              `json:"data,omitempty"`
	FileName    string              `json:"fileName,omitempty"`
	Degraded    bool                `json:"degraded"`
	Diagnostics []domain.Diagnostic `json:"diagnostics,omitempty"`
	Error       string              `json:"error,omitempty"`
}

// PresentationResponse is one entry of GET /api/presentations.
type PresentationResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Theme      string    `json:"theme,omitempty"`
	SlideCount int       `json:"slideCount"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) listThemes(c *gin.Context) {
	if s.ports.Theme == nil {
		c.JSON(http.StatusOK, gin.H{"themes": domain.BuiltInThemes(), "count": len(domain.BuiltInThemes())})
		return
	}
	themes, err := s.ports.Theme.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"themes": themes, "count": len(themes)})
}

func (s *Server) listPresentations(c *gin.Context) {
	summaries, err := s.ports.Presentation.List(c.Request.Context(), ownerFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]PresentationResponse, len(summaries))
	for i, p := range summaries {
		out[i] = PresentationResponse{
			ID:         p.ID,
			Title:      p.Title,
			Theme:      p.ThemeName,
			SlideCount: p.SlideCount,
			CreatedAt:  p.CreatedAt,
			UpdatedAt:  p.UpdatedAt,
		}
	}
	c.JSON(http.StatusOK, gin.H{"presentations": out, "count": len(out)})
}

func (s *Server) getPresentation(c *gin.Context) {
	p, err := s.ports.Presentation.Get(c.Request.Context(), ownerFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	data, err := domain.MarshalPresentation(p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

func (s *Server) exportPresentation(c *gin.Context) {
	var body ExportRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, ExportResponse{Error: "invalid request body: " + err.Error()})
			return
		}
	}

	result, err := s.export(c, body)
	if err != nil {
		_ = c.Error(err)
		status := statusFor(err)
		c.JSON(status, ExportResponse{Error: errorMessage(status, err)})
		return
	}

	c.JSON(http.StatusOK, ExportResponse{
		Success:     true,
		Data:        result.Base64(),
		FileName:    result.FileName,
		Degraded:    result.Degraded,
		Diagnostics: result.Diagnostics,
	})
}

func (s *Server) downloadPresentation(c *gin.Context) {
	result, err := s.export(c, ExportRequest{
		FileName: c.Query("fileName"),
		Theme:    c.Query("theme"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	c.Header(degradedHeader, strconv.FormatBool(result.Degraded))
	c.Data(http.StatusOK, domain.PPTXMediaType, result.Data)
}

func (s *Server) export(c *gin.Context, body ExportRequest) (*domain.ExportResult, error) {
	var override domain.ColorOverride
	if len(body.Colors) > 0 {
		override = make(domain.ColorOverride, len(body.Colors))
		for role, color := range body.Colors {
			override[domain.ColorRole(role)] = color
		}
	}
	return s.ports.Export.Export(c.Request.Context(), domain.ExportRequest{
		PresentationID: c.Param("id"),
		OwnerID:        ownerFrom(c),
		FileNameHint:   body.FileName,
		ThemeName:      body.Theme,
		Override:       override,
	})
}

// statusFor maps an error to an HTTP status. Presentations owned by
// someone else are reported as missing.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrForbidden):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAuthRequired), errors.Is(err, domain.ErrAuthInvalid):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrEmptyOrOversizedDocument):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	}

	var exportErr *domain.ExportError
	if errors.As(err, &exportErr) && exportErr.Kind == domain.FailureValidation {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	status := statusFor(err)
	c.JSON(status, gin.H{"error": errorMessage(status, err)})
}

// errorMessage hides whether a missing presentation exists for another owner.
func errorMessage(status int, err error) string {
	if status == http.StatusNotFound {
		return domain.ErrNotFound.Error()
	}
	return err.Error()
}

func abortWithError(c *gin.Context, status int, err error) {
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
