package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/proverb-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/proverb-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/proverb-service/internal/app"
	"github.com/jsamuelsen/proverb-service/internal/platform/config"
	"github.com/jsamuelsen/proverb-service/internal/platform/logging"
)

// Listing response headers.
const (
	HeaderTotalCount = "X-Total-Count"
	HeaderNextCursor = "X-Next-Cursor"
)

// ProverbHandler handles the proverb collection endpoints.
type ProverbHandler struct {
	service *app.ProverbService
}

// NewProverbHandler creates a new proverb handler.
func NewProverbHandler(service *app.ProverbService) *ProverbHandler {
	return &ProverbHandler{
		service: service,
	}
}

// List handles GET /api/proverbs.
// The body is always a JSON array; X-Total-Count carries the collection size
// and X-Next-Cursor is set when another page follows.
//
// @Summary List proverbs
// @Tags proverbs
// @Produce json
// @Param limit query int false "Page size (1-100)"
// @Param cursor query string false "Cursor from X-Next-Cursor"
// @Param fields query string false "Comma-separated field projection"
// @Success 200 {array} dto.ProverbResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/proverbs [get]
func (h *ProverbHandler) List(c *gin.Context) {
	var query dto.ListQuery
	if err := dto.BindQueryAndValidate(c, &query); err != nil {
		dto.HandleError(c, err)
		return
	}

	opts, err := query.Options()
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	page, err := h.service.List(c.Request.Context(), opts)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Header(HeaderTotalCount, strconv.FormatInt(page.Total, 10))

	if page.Next != nil {
		c.Header(HeaderNextCursor, dto.EncodeCursor(page.Next))
	}

	c.JSON(http.StatusOK, dto.NewProverbListResponse(page.Items, opts.Fields))
}

// Get handles GET /api/proverbs/:id.
//
// @Summary Get a proverb
// @Tags proverbs
// @Produce json
// @Param id path string true "Proverb ID"
// @Success 200 {object} dto.ProverbResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/proverbs/{id} [get]
func (h *ProverbHandler) Get(c *gin.Context) {
	p, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewProverbResponse(p))
}

// Create handles POST /api/proverbs.
//
// @Summary Create a proverb
// @Tags proverbs
// @Accept json
// @Produce json
// @Param proverb body dto.ProverbRequest true "Proverb"
// @Success 201 {object} dto.ProverbResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/proverbs [post]
func (h *ProverbHandler) Create(c *gin.Context) {
	var req dto.ProverbRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	p, err := h.service.Create(c.Request.Context(), req.ToDomain())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Header("Location", c.Request.URL.Path+"/"+p.ID)
	c.JSON(http.StatusCreated, dto.NewProverbResponse(p))
}

// Update handles PUT /api/proverbs/:id. The body replaces every
// client-supplied field.
//
// @Summary Replace a proverb
// @Tags proverbs
// @Accept json
// @Produce json
// @Param id path string true "Proverb ID"
// @Param proverb body dto.ProverbRequest true "Proverb"
// @Success 200 {object} dto.ProverbResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/proverbs/{id} [put]
func (h *ProverbHandler) Update(c *gin.Context) {
	var req dto.ProverbRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	p, err := h.service.Update(c.Request.Context(), c.Param("id"), req.ToDomain())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewProverbResponse(p))
}

// Delete handles DELETE /api/proverbs/:id.
//
// @Summary Delete a proverb
// @Tags proverbs
// @Param id path string true "Proverb ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/proverbs/{id} [delete]
func (h *ProverbHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Vocabulary handles GET /api/vocabulary.
func (h *ProverbHandler) Vocabulary(c *gin.Context) {
	v := h.service.Vocabulary()
	c.JSON(http.StatusOK, dto.NewVocabularyResponse(v.Moods, v.Situations))
}

// RegisterProverbRoutes registers the proverb routes on rg. Write routes are
// guarded by middleware.WriteAccess when auth is enabled.
func (h *ProverbHandler) RegisterProverbRoutes(rg *gin.RouterGroup, authCfg *config.AuthConfig) {
	write := middleware.WriteAccess(authCfg)

	proverbs := rg.Group("/proverbs")
	proverbs.GET("", h.List)
	proverbs.POST("", append(write, h.Create)...)

	item := proverbs.Group("/:id", tagProverbID)
	item.GET("", h.Get)
	item.PUT("", append(write, h.Update)...)
	item.DELETE("", append(write, h.Delete)...)

	rg.GET("/vocabulary", h.Vocabulary)
}

// tagProverbID adds the path id to the request logger.
func tagProverbID(c *gin.Context) {
	ctx := logging.With(c.Request.Context(), logging.KeyProverbID, c.Param("id"))
	c.Request = c.Request.WithContext(ctx)
	c.Next()
}
