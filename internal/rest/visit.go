package rest

import (
	"context"
	"net/http"
	"time"

	"keel/business/visits"
	"keel/domain"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"
)

const IdempotencyKeyHeader = "Idempotency-Key"

type (
	VisitHandler struct {
		visitService VisitService
		timeout      time.Duration
	}

	VisitService interface {
		Record(ctx context.Context, event *domain.VisitEvent) (string, error)
		History(ctx context.Context, userID uint, limit int) ([]domain.VisitEvent, error)
	}
)

func NewVisitHandler(visitService VisitService) *VisitHandler {
	return &VisitHandler{
		visitService: visitService,
		timeout:      10 * time.Second,
	}
}

// POST /api/v1/events/visit
//
// The Idempotency-Key header is mandatory; mobile clients retry on flaky
// networks and each retry must collapse into one stored event.
func (h *VisitHandler) Record(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	idemKey := c.Request().Header.Get(IdempotencyKeyHeader)
	if idemKey == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "Idempotency-Key header is required"})
	}

	var payload map[string]interface{}
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	event := domain.VisitEvent{
		UserID:         userID,
		IdempotencyKey: idemKey,
		Payload:        datatypes.JSONMap(payload),
	}

	status, err := h.visitService.Record(ctx, &event)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	if status == visits.StatusDuplicate {
		return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]interface{}{
			"status": status,
		}))
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(map[string]interface{}{
		"status": status,
		"id":     event.ID,
	}))
}

// GET /api/v1/events/visit?limit=20
func (h *VisitHandler) History(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var limit int
	_ = echo.QueryParamsBinder(c).Int("limit", &limit).BindError()

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	events, err := h.visitService.History(ctx, userID, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(events))
}
