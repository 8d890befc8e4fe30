package availability

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinic/clinic/internal/platform/auth"
	"github.com/clinic/clinic/pkg/domainerr"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/doctors/:id/available-times", h.GetAvailableTimes,
		auth.RequireRole("admin", "doctor", "patient"))
	api.PUT("/doctors/:id/available-times", h.SetAvailableTimes,
		auth.RequireRole("admin", "doctor"))
}

type setSlotsRequest struct {
	Slots []string `json:"slots"`
}

func (h *Handler) GetAvailableTimes(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	slots, err := h.svc.AvailableSlots(c.Request().Context(), id)
	if err != nil {
		return c.JSON(domainerr.HTTPStatus(err), domainerr.Payload(err))
	}
	if slots == nil {
		slots = []string{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"slots": slots})
}

func (h *Handler) SetAvailableTimes(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req setSlotsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.SetAvailableTimes(c.Request().Context(), id, req.Slots); err != nil {
		return c.JSON(domainerr.HTTPStatus(err), domainerr.Payload(err))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"slots": req.Slots})
}
