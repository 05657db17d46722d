package screenings

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"resume-screener/internal/screening"
	"resume-screener/internal/shared/server/middleware"
	"resume-screener/internal/shared/server/respond"
)

const (
	maxUploadSize  = 10 << 20 // 10MB
	// maxRequestSize leaves room for the form fields around the file.
	maxRequestSize = maxUploadSize + 1<<20
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches screening routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/roles", h.listRoles)
	rg.POST("/screenings", h.create)
	rg.GET("/screenings", h.list)
	rg.GET("/screenings/:id", h.get)
}

type screeningResponse struct {
	ID             string           `json:"id"`
	BatchID        string           `json:"batchId"`
	Role           string           `json:"role"`
	FileName       string           `json:"fileName"`
	Format         string           `json:"format"`
	Checksum       string           `json:"checksum"`
	StorageKey     string           `json:"storageKey,omitempty"`
	JobDescription string           `json:"jobDescription"`
	Result         screening.Result `json:"result"`
	CreatedAt      time.Time        `json:"createdAt"`
}

func toResponse(s Screening) screeningResponse {
	return screeningResponse{
		ID:             s.ID,
		BatchID:        s.BatchID,
		Role:           s.Role,
		FileName:       s.FileName,
		Format:         string(s.Format),
		Checksum:       s.Checksum,
		StorageKey:     s.StorageKey,
		JobDescription: s.JobDescription,
		Result:         s.Result,
		CreatedAt:      s.CreatedAt,
	}
}

func (h *Handler) listRoles(c *gin.Context) {
	respond.OK(c, gin.H{"roles": h.Svc.Roles()})
}

func (h *Handler) create(c *gin.Context) {
	if c.Request.ContentLength > maxRequestSize {
		respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds 10MB", nil)
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds 10MB", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	if fileHeader.Size > maxUploadSize {
		respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds 10MB", nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	roles := parseRoles(c.PostFormArray("roles"))
	c.Set(middleware.ScreeningRolesKey, roles)

	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	batch, err := h.Svc.Screen(ctx, UploadRequest{
		FileName:       fileHeader.Filename,
		Data:           data,
		JobDescription: c.PostForm("jobDescription"),
		Roles:          roles,
	})
	if err != nil {
		var unknown *screening.UnknownRoleError
		switch {
		case errors.As(err, &unknown):
			respond.Error(c, http.StatusBadRequest, "unknown_role", unknown.Error(), gin.H{
				"role":  unknown.Role,
				"known": unknown.Known,
			})
		case errors.Is(err, ErrUnsupportedFormat):
			respond.Error(c, http.StatusBadRequest, "unsupported_format", "file must be .pdf or .docx", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to screen resume", nil)
		}
		return
	}

	c.Set(middleware.ScreeningBatchKey, batch.ID)
	out := make([]screeningResponse, 0, len(batch.Screenings))
	for _, s := range batch.Screenings {
		out = append(out, toResponse(s))
	}
	respond.JSON(c, http.StatusCreated, gin.H{"batchId": batch.ID, "screenings": out})
}

func (h *Handler) get(c *gin.Context) {
	s, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "screening not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch screening", nil)
		return
	}
	respond.OK(c, toResponse(s))
}

func (h *Handler) list(c *gin.Context) {
	limit := 0
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}

	items, err := h.Svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list screenings", nil)
		return
	}
	out := make([]screeningResponse, 0, len(items))
	for _, s := range items {
		out = append(out, toResponse(s))
	}
	respond.OK(c, gin.H{"screenings": out})
}

// parseRoles accepts repeated fields and comma separated values.
func parseRoles(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
