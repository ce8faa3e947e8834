package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jrjohn/streamlens-go/internal/domain/service"
	"github.com/jrjohn/streamlens-go/internal/dto/request"
	"github.com/jrjohn/streamlens-go/internal/dto/response"
	"github.com/jrjohn/streamlens-go/internal/middleware"
	"github.com/jrjohn/streamlens-go/internal/security"
	apperrors "github.com/jrjohn/streamlens-go/pkg/errors"
)

const (
	msgContentNotFound  = "content not found"
	msgInvalidContentID = "invalid content ID"
)

// ContentController handles catalog endpoints
type ContentController struct {
	contentService  service.ContentService
	securityService *security.SecurityService
	authMiddleware  *middleware.AuthMiddleware
}

// NewContentController creates a new ContentController instance
func NewContentController(
	contentService service.ContentService,
	securityService *security.SecurityService,
	authMiddleware *middleware.AuthMiddleware,
) *ContentController {
	return &ContentController{
		contentService:  contentService,
		securityService: securityService,
		authMiddleware:  authMiddleware,
	}
}

// RegisterRoutes registers the catalog routes
func (c *ContentController) RegisterRoutes(router *gin.RouterGroup) {
	content := router.Group("/content")
	content.Use(c.authMiddleware.Authenticate())
	{
		content.GET("", c.List)
		content.POST("", c.Create)
		content.GET("/check-duplicate", c.CheckDuplicate)
		content.GET("/export", c.Export)
		content.POST("/import", c.Import)
		content.GET("/import/sessions", c.ListImportSessions)
		content.GET("/import/errors", c.ListImportErrors)
		content.GET("/:id", c.GetByID)
		content.PUT("/:id", c.Update)
		content.DELETE("/:id", c.authMiddleware.RequireAdmin(), c.Delete)
	}
}

// contentIDParam parses the :id path parameter.
func contentIDParam(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewError[any](msgInvalidContentID))
		return 0, false
	}
	return uint(id), true
}

// respondContentError maps catalog service errors onto HTTP responses.
func respondContentError(ctx *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrContentNotFound):
		ctx.JSON(http.StatusNotFound, response.NewError[any](msgContentNotFound))
	case errors.Is(err, service.ErrDuplicateEntry):
		ctx.JSON(http.StatusConflict, response.NewError[any](err.Error()))
	default:
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			ctx.JSON(appErr.Status, response.NewErrorWithDetails[any](appErr.Message, appErr.Fields))
			return
		}
		ctx.JSON(http.StatusInternalServerError, response.NewError[any](fallback))
	}
}

// Create adds a catalog entry
// @Summary Create a catalog entry
// @Tags Content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.ContentRequest true "Catalog entry"
// @Success 201 {object} response.ApiResponse[entity.Content]
// @Failure 400 {object} response.ApiResponse[any]
// @Failure 409 {object} response.ApiResponse[any]
// @Router /api/v1/content [post]
func (c *ContentController) Create(ctx *gin.Context) {
	var req request.ContentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	actorID := c.securityService.GetCurrentUserID(ctx)
	content, err := c.contentService.Create(ctx.Request.Context(), actorID, &req, clientMeta(ctx))
	if err != nil {
		respondContentError(ctx, err, "failed to create content")
		return
	}

	ctx.JSON(http.StatusCreated, response.NewSuccess(content, "Content created successfully"))
}

// List retrieves catalog entries with filtering and pagination
// @Summary List catalog entries
// @Tags Content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param platform query string false "Platform filter (comma separated)"
// @Param genre query string false "Genre filter (comma separated)"
// @Param year query string false "Year, list or range (2020, 2019,2021, 2018-2022)"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size"
// @Success 200 {object} response.ApiResponse[response.PagedResponse[entity.Content]]
// @Router /api/v1/content [get]
func (c *ContentController) List(ctx *gin.Context) {
	var q request.AnalyticsQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	page, err := c.contentService.List(ctx.Request.Context(), &q)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to fetch content"))
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccessWithData(page))
}

// GetByID retrieves a catalog entry
// @Summary Get catalog entry by ID
// @Tags Content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Content ID"
// @Success 200 {object} response.ApiResponse[entity.Content]
// @Router /api/v1/content/{id} [get]
func (c *ContentController) GetByID(ctx *gin.Context) {
	id, ok := contentIDParam(ctx)
	if !ok {
		return
	}

	content, err := c.contentService.Get(ctx.Request.Context(), id)
	if err != nil {
		respondContentError(ctx, err, "failed to fetch content")
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccessWithData(content))
}

// Update applies a full update to a catalog entry
// @Summary Update catalog entry
// @Tags Content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Content ID"
// @Param request body request.ContentRequest true "Catalog entry"
// @Success 200 {object} response.ApiResponse[entity.Content]
// @Router /api/v1/content/{id} [put]
func (c *ContentController) Update(ctx *gin.Context) {
	id, ok := contentIDParam(ctx)
	if !ok {
		return
	}

	var req request.ContentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	actorID := c.securityService.GetCurrentUserID(ctx)
	content, err := c.contentService.Update(ctx.Request.Context(), actorID, id, &req, clientMeta(ctx))
	if err != nil {
		respondContentError(ctx, err, "failed to update content")
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess(content, "Content updated successfully"))
}

// Delete removes a catalog entry
// @Summary Delete catalog entry
// @Tags Content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Content ID"
// @Success 200 {object} response.ApiResponse[any]
// @Router /api/v1/content/{id} [delete]
func (c *ContentController) Delete(ctx *gin.Context) {
	id, ok := contentIDParam(ctx)
	if !ok {
		return
	}

	actorID := c.securityService.GetCurrentUserID(ctx)
	if err := c.contentService.Delete(ctx.Request.Context(), actorID, id, clientMeta(ctx)); err != nil {
		respondContentError(ctx, err, "failed to delete content")
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess[any](nil, "Content deleted successfully"))
}

// CheckDuplicate reports whether a (platform, title, year) key exists
// @Summary Check for a duplicate catalog entry
// @Tags Content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param platform query string true "Platform"
// @Param title query string true "Title"
// @Param year query int true "Release year"
// @Success 200 {object} response.ApiResponse[response.DuplicateCheckResponse]
// @Router /api/v1/content/check-duplicate [get]
func (c *ContentController) CheckDuplicate(ctx *gin.Context) {
	var q request.DuplicateCheckQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	result, err := c.contentService.CheckDuplicate(ctx.Request.Context(), q.Platform, q.Title, q.Year)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to check for duplicates"))
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccessWithData(result))
}

// Import ingests a CSV file of catalog entries
// @Summary Import catalog entries from CSV
// @Tags Content
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "CSV file"
// @Success 200 {object} response.ApiResponse[response.ImportReport]
// @Failure 400 {object} response.ApiResponse[any]
// @Router /api/v1/content/import [post]
func (c *ContentController) Import(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewError[any]("csv file is required"))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewError[any]("failed to read uploaded file"))
		return
	}
	defer f.Close()

	actorID := c.securityService.GetCurrentUserID(ctx)
	report, err := c.contentService.ImportCSV(ctx.Request.Context(), actorID, fileHeader.Filename, f, clientMeta(ctx))
	if err != nil {
		respondContentError(ctx, err, "import failed")
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess(report, "Import completed"))
}

// ListImportSessions lists past import error sessions
// @Summary List import sessions
// @Tags Content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size"
// @Success 200 {object} response.ApiResponse[response.PagedResponse[response.ImportSessionResponse]]
// @Router /api/v1/content/import/sessions [get]
func (c *ContentController) ListImportSessions(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	sessions, err := c.contentService.ListImportSessions(ctx.Request.Context(), page, limit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to fetch import sessions"))
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccessWithData(sessions))
}

// ListImportErrors retrieves recorded row failures
// @Summary List import errors
// @Tags Content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param startedAt query string false "Session start time (RFC 3339)"
// @Param file query string false "Session file name"
// @Param page query int false "Page number" default(1)
// @Success 200 {object} response.ApiResponse[response.PagedResponse[response.ImportRowError]]
// @Router /api/v1/content/import/errors [get]
func (c *ContentController) ListImportErrors(ctx *gin.Context) {
	var q request.ImportErrorsQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	errs, err := c.contentService.ListImportErrors(ctx.Request.Context(), &q)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to fetch import errors"))
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccessWithData(errs))
}

// Export streams catalog entries matching the filter as CSV
// @Summary Export catalog entries to CSV
// @Tags Content
// @Produce text/csv
// @Security BearerAuth
// @Param platform query string false "Platform filter (comma separated)"
// @Param year query string false "Year, list or range"
// @Success 200 {string} string "CSV data"
// @Router /api/v1/content/export [get]
func (c *ContentController) Export(ctx *gin.Context) {
	var q request.AnalyticsQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	filename := fmt.Sprintf("catalog-%s.csv", time.Now().Format("2006-01-02"))
	ctx.Header("Content-Type", "text/csv")
	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	actorID := c.securityService.GetCurrentUserID(ctx)
	if _, err := c.contentService.ExportCSV(ctx.Request.Context(), actorID, &q, ctx.Writer, clientMeta(ctx)); err != nil {
		// Headers may already be out; report in the trailer-less body.
		ctx.Status(http.StatusInternalServerError)
	}
}
