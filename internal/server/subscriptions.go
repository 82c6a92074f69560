package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorhill/cronexpr"
	"github.com/labstack/echo/v4"

	"github.com/mhrezaei/newsbrief/internal/store"
)

type SubscriptionsHandler struct {
	Store store.Store
}

func (h *SubscriptionsHandler) Register(g *echo.Group) {
	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.DELETE("/:id", h.delete)
}

func (h *SubscriptionsHandler) create(c echo.Context) error {
	var req struct {
		Query        string `json:"query"`
		Schedule     string `json:"schedule"`
		SummaryCount int    `json:"summary_count"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Query) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query required")
	}
	if req.Schedule == "" {
		req.Schedule = "@daily"
	}
	if _, err := cronexpr.Parse(req.Schedule); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid schedule: "+err.Error())
	}

	sub := store.Subscription{
		ID:           uuid.NewString(),
		Query:        req.Query,
		Schedule:     req.Schedule,
		SummaryCount: req.SummaryCount,
		CreatedAt:    time.Now(),
	}
	if err := h.Store.SaveSubscription(c.Request().Context(), sub); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, sub)
}

func (h *SubscriptionsHandler) list(c echo.Context) error {
	subs, err := h.Store.ListSubscriptions(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, subs)
}

func (h *SubscriptionsHandler) get(c echo.Context) error {
	sub, err := h.Store.GetSubscription(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrSubscriptionNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, sub)
}

func (h *SubscriptionsHandler) delete(c echo.Context) error {
	if err := h.Store.DeleteSubscription(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, store.ErrSubscriptionNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
