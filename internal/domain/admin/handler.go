package admin

import (
	"net/http"

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

// RegisterRoutes wires the authenticated admin management endpoints. Login
// lives on the public group because callers do not have a token yet.
func (h *Handler) RegisterRoutes(api, public *echo.Group) {
	public.POST("/admin/login", h.Login)
	api.POST("/admins", h.Create, auth.RequireRole("admin"))
}

func (h *Handler) Create(c echo.Context) error {
	var p CreateParams
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a, err := h.svc.CreateAdmin(c.Request().Context(), p)
	if err != nil {
		return c.JSON(domainerr.HTTPStatus(err), domainerr.Payload(err))
	}
	return c.JSON(http.StatusCreated, a)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	token, err := h.svc.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if domainerr.HTTPStatus(err) == http.StatusBadRequest {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "invalid username or password"})
		}
		return c.JSON(domainerr.HTTPStatus(err), domainerr.Payload(err))
	}
	return c.JSON(http.StatusOK, map[string]string{"token": token})
}
