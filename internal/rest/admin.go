package rest

import (
	"context"
	"net/http"

	"keel/business/rewards"
	"keel/pkg/logger"

	"github.com/labstack/echo/v4"
)

type (
	AdminHandler struct {
		rulesProvider *rewards.RulesProvider
		configStore   ConfigStore
	}

	ConfigStore interface {
		GetConfig(ctx context.Context, name string) (string, error)
		SetConfig(ctx context.Context, name, value string) error
	}
)

func NewAdminHandler(rulesProvider *rewards.RulesProvider, configStore ConfigStore) *AdminHandler {
	return &AdminHandler{
		rulesProvider: rulesProvider,
		configStore:   configStore,
	}
}

// PUT /api/v1/admin/rewards/reload
//
// Re-reads the rules file and swaps the table atomically. A failed reload
// leaves the running table untouched.
func (h *AdminHandler) ReloadRules(c echo.Context) error {
	if err := h.rulesProvider.Reload(); err != nil {
		logger.Error("Failed to reload rewards rules", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status": "ok",
		"cards":  len(h.rulesProvider.Current().Cards),
	})
}

// GET /api/v1/admin/config?name=..
func (h *AdminHandler) GetConfig(c echo.Context) error {
	ctx := c.Request().Context()
	name := c.QueryParam("name")

	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "name is required",
		})
	}

	value, err := h.configStore.GetConfig(ctx, name)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"name":  name,
		"value": value,
	})
}

// PUT /api/v1/admin/config
// body: { "name": "...", "value": "..." }
type upsertConfigRequest struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (h *AdminHandler) SetConfig(c echo.Context) error {
	ctx := c.Request().Context()

	var body upsertConfigRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "invalid body: " + err.Error(),
		})
	}
	if body.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "name is required",
		})
	}

	if err := h.configStore.SetConfig(ctx, body.Name, body.Value); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status": "ok",
	})
}
