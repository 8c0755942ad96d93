package order

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"tableserve/internal/httpx"
)

type Handler struct {
	svc *Service
	log zerolog.Logger
}

func NewHandler(svc *Service, log zerolog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) Register(r gin.IRouter) {
	o := r.Group("/Order")
	o.POST("/place", h.place)
	o.PUT("", h.update)
	o.GET("/by-reference", h.byReference)
}

// POST /Order/place
// Headers: BusinessId (required), CooperateId and Idempotency-Key (optional).
func (h *Handler) place(c *gin.Context) {
	businessID := c.GetHeader("BusinessId")
	if businessID == "" {
		httpx.Fail(c, http.StatusBadRequest, "BusinessId header is required")
		return
	}

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if req.QuickResponseID == "" {
		httpx.FailFields(c, http.StatusBadRequest, "validation failed",
			map[string][]string{"quickResponseID": {"quickResponseID is required for new orders"}})
		return
	}

	o, err := h.svc.Place(c.Request.Context(), businessID, c.GetHeader("CooperateId"), c.GetHeader("Idempotency-Key"), req)
	switch {
	case errors.Is(err, ErrDuplicate):
		httpx.Fail(c, http.StatusConflict, "an order with this idempotency key was already placed")
	case err != nil:
		h.log.Error().Err(err).Str("business_id", businessID).Msg("place order failed")
		httpx.Fail(c, http.StatusInternalServerError, "failed to place order")
	default:
		httpx.OK(c, http.StatusCreated, o)
	}
}

// PUT /Order?orderId=<id>
func (h *Handler) update(c *gin.Context) {
	orderID := c.Query("orderId")
	if orderID == "" {
		httpx.Fail(c, http.StatusBadRequest, "orderId query parameter is required")
		return
	}

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	o, err := h.svc.Update(c.Request.Context(), orderID, req)
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.Fail(c, http.StatusNotFound, "order not found")
	case errors.Is(err, ErrInvalidTransition):
		httpx.Fail(c, http.StatusUnprocessableEntity, "order cannot move to the requested status")
	case err != nil:
		h.log.Error().Err(err).Str("order_id", orderID).Msg("update order failed")
		httpx.Fail(c, http.StatusInternalServerError, "failed to update order")
	default:
		httpx.OK(c, http.StatusOK, o)
	}
}

// GET /Order/by-reference
// Headers: reference and businessId (required), cooperateId (optional).
func (h *Handler) byReference(c *gin.Context) {
	reference := c.GetHeader("reference")
	businessID := c.GetHeader("businessId")
	if reference == "" || businessID == "" {
		httpx.Fail(c, http.StatusBadRequest, "reference and businessId headers are required")
		return
	}

	o, err := h.svc.GetByReference(c.Request.Context(), reference, businessID)
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.Fail(c, http.StatusNotFound, "order not found")
	case err != nil:
		h.log.Error().Err(err).Str("reference", reference).Msg("fetch order failed")
		httpx.Fail(c, http.StatusInternalServerError, "failed to fetch order")
	default:
		httpx.OK(c, http.StatusOK, o)
	}
}

// bindError turns gin binding failures into the envelope's field-error
// map when the underlying error carries per-field details.
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string][]string, len(verrs))
		for _, fe := range verrs {
			name := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
			fields[name] = append(fields[name], "failed validation on "+fe.Tag())
		}
		httpx.FailFields(c, http.StatusBadRequest, "validation failed", fields)
		return
	}
	httpx.Fail(c, http.StatusBadRequest, "invalid request body")
}
