package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mhrezaei/newsbrief/internal/agent"
	"github.com/mhrezaei/newsbrief/internal/scheduler"
	"github.com/mhrezaei/newsbrief/internal/store"
)

type RunsHandler struct {
	Store  store.Store
	Runner scheduler.Runner
}

func (h *RunsHandler) Register(g *echo.Group) {
	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.GET("/:id/digest", h.digest)
}

// create executes a run synchronously and records it. A FAILED terminal
// state still answers 200: the failure reason and partial state are part of
// the result, not a transport error.
func (h *RunsHandler) create(c echo.Context) error {
	var req agent.RunInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Query) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query required")
	}

	res := h.Runner.Run(c.Request().Context(), req)
	observeRun(res)
	if err := h.Store.SaveRun(c.Request().Context(), res); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, res)
}

func (h *RunsHandler) list(c echo.Context) error {
	runs, err := h.Store.ListRuns(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, runs)
}

func (h *RunsHandler) get(c echo.Context) error {
	run, err := h.Store.GetRun(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrRunNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, run)
}

// digest serves the markdown brief of a finished run.
func (h *RunsHandler) digest(c echo.Context) error {
	run, err := h.Store.GetRun(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrRunNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.Blob(http.StatusOK, "text/markdown; charset=utf-8", []byte(run.Digest))
}
