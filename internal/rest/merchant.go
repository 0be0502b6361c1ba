package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"keel/business/merchant"
	"keel/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	MerchantHandler struct {
		validate        *validator.Validate
		merchantService MerchantResolver
		timeout         time.Duration
	}

	ResolveQuery struct {
		Lat float64 `query:"lat" validate:"required,min=-90,max=90"`
		Lon float64 `query:"lon" validate:"required,min=-180,max=180"`
	}
)

func NewMerchantHandler(merchantService MerchantResolver) *MerchantHandler {
	return &MerchantHandler{
		validate:        validator.New(),
		merchantService: merchantService,
		timeout:         10 * time.Second,
	}
}

// GET /api/v1/merchant/resolve?lat=..&lon=..
func (h *MerchantHandler) Resolve(c echo.Context) error {
	var q ResolveQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	resolved, err := h.merchantService.Resolve(ctx, q.Lat, q.Lon)
	if err != nil {
		if errors.Is(err, merchant.ErrNoMerchantFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to resolve merchant", err)
		return c.JSON(http.StatusBadGateway, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(resolved))
}
