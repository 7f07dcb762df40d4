package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devboard/devboard-api/internal/core/ports"
)

// AssetHandler handles the key → URL asset mapping endpoints.
type AssetHandler struct {
	service ports.AssetService
}

func NewAssetHandler(service ports.AssetService) *AssetHandler {
	return &AssetHandler{service: service}
}

type upsertAssetRequest struct {
	URL string `json:"url" validate:"required,url"`
	Alt string `json:"alt" validate:"max=300"`
}

// Upsert creates or replaces the asset stored under a key. A newly created
// mapping answers 201, a replaced one 200.
//
// @Summary      Create or replace an asset mapping
// @Tags         assets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        key   path      string              true  "Asset key"
// @Param        body  body      upsertAssetRequest  true  "Target URL and alt text"
// @Success      200   {object}  map[string]any
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  map[string]string
// @Router       /assets/{key} [put]
func (h *AssetHandler) Upsert(c echo.Context) error {
	var req upsertAssetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	asset, created, err := h.service.Upsert(c.Request().Context(), c.Param("key"), ports.UpsertAssetInput{
		URL: req.URL,
		Alt: req.Alt,
	})
	if err != nil {
		return err
	}

	code := http.StatusOK
	if created {
		code = http.StatusCreated
	}
	return respond(c, code, asset)
}

// Get resolves one asset by key.
//
// @Summary      Get an asset mapping
// @Tags         assets
// @Produce      json
// @Param        key  path      string  true  "Asset key"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]string
// @Router       /assets/{key} [get]
func (h *AssetHandler) Get(c echo.Context) error {
	asset, err := h.service.GetByKey(c.Request().Context(), c.Param("key"))
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, asset)
}

// List returns every asset mapping.
//
// @Summary      List asset mappings
// @Tags         assets
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /assets [get]
func (h *AssetHandler) List(c echo.Context) error {
	assets, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, assets)
}

// Delete removes an asset mapping by key.
//
// @Summary      Delete an asset mapping
// @Tags         assets
// @Produce      json
// @Security     BearerAuth
// @Param        key  path      string  true  "Asset key"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /assets/{key} [delete]
func (h *AssetHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("key")); err != nil {
		return err
	}

	return respond(c, http.StatusOK, map[string]string{"message": "asset deleted"})
}
