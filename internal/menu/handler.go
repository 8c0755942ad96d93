package menu

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"tableserve/internal/httpx"
)

type Handler struct {
	repo Repository
	log  zerolog.Logger
}

func NewHandler(repo Repository, log zerolog.Logger) *Handler {
	return &Handler{repo: repo, log: log}
}

func (h *Handler) Register(r gin.IRouter) {
	m := r.Group("/Menu")
	m.GET("/categories", h.listCategories)
	m.GET("/items", h.listItems)
}

// GET /Menu/categories
// Headers: businessId (required), cooperateId (optional).
func (h *Handler) listCategories(c *gin.Context) {
	businessID := c.GetHeader("businessId")
	if businessID == "" {
		httpx.Fail(c, http.StatusBadRequest, "businessId header is required")
		return
	}

	cats, err := h.repo.ListCategories(c.Request.Context(), businessID, c.GetHeader("cooperateId"))
	if err != nil {
		h.log.Error().Err(err).Str("business_id", businessID).Msg("list categories failed")
		httpx.Fail(c, http.StatusInternalServerError, "failed to load menu categories")
		return
	}
	if cats == nil {
		cats = []Category{}
	}
	httpx.OK(c, http.StatusOK, cats)
}

// GET /Menu/items?MenuId&Page&PageSize
func (h *Handler) listItems(c *gin.Context) {
	menuID := c.Query("MenuId")
	if menuID == "" {
		httpx.Fail(c, http.StatusBadRequest, "MenuId query parameter is required")
		return
	}
	page, _ := strconv.Atoi(c.Query("Page"))
	pageSize, _ := strconv.Atoi(c.Query("PageSize"))

	items, err := h.repo.ListItems(c.Request.Context(), ItemsQuery{MenuID: menuID, Page: page, PageSize: pageSize})
	if err != nil {
		h.log.Error().Err(err).Str("menu_id", menuID).Msg("list items failed")
		httpx.Fail(c, http.StatusInternalServerError, "failed to load menu items")
		return
	}
	httpx.OK(c, http.StatusOK, items)
}
