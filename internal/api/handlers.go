package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/zeebo/xxh3"

	"lawmap/internal/metrics"
	"lawmap/internal/models"
	"lawmap/internal/selection"
	"lawmap/internal/view"
)

type Handler struct {
	registry atomic.Pointer[view.Registry]
	metrics  *metrics.Metrics
}

// NewHandler returns a handler that answers 503 until SetData is called.
func NewHandler(reg *view.Registry, m *metrics.Metrics) *Handler {
	h := &Handler{metrics: m}
	if reg != nil {
		h.registry.Store(reg)
	}
	return h
}

// SetData makes the handler live once the datasets are loaded.
func (h *Handler) SetData(reg *view.Registry) {
	h.registry.Store(reg)
}

// RegisterRoutes mounts the API. limiter, if set, guards the view routes.
func (h *Handler) RegisterRoutes(e *echo.Echo, limiter echo.MiddlewareFunc) {
	api := e.Group("/api")
	api.GET("/health", h.Health)

	data := api.Group("", h.requireData)
	data.GET("/countries", h.GetCountries)
	data.GET("/rates/summary", h.GetRateSummary)

	views := data.Group("/views")
	if limiter != nil {
		views.Use(limiter)
	}
	views.POST("", h.CreateView)
	views.GET("/:id", h.GetView)
	views.DELETE("/:id", h.DeleteView)
	views.POST("/:id/click", h.ClickCountry)
	views.POST("/:id/topic", h.ClickTopic)
	views.POST("/:id/close", h.CloseDetail)
	views.POST("/:id/clear", h.ClearComparison)
	views.POST("/:id/styles", h.GetStyles)
}

type createViewRequest struct {
	Mode string `json:"mode"`
}

type clickRequest struct {
	Name string `json:"name"`
}

type topicRequest struct {
	Topic string `json:"topic"`
}

type stylesRequest struct {
	Names []string `json:"names"`
}

// --- MIDDLEWARE & HELPERS ---

func (h *Handler) requireData(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if h.registry.Load() == nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "datasets are still loading")
		}
		return next(c)
	}
}

func getPaginationParams(c echo.Context, defaultLimit int) (int, int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

// toHTTPError maps view errors onto status codes.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, view.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error()).SetInternal(err)
	case errors.Is(err, view.ErrWrongMode):
		return echo.NewHTTPError(http.StatusConflict, err.Error()).SetInternal(err)
	case errors.Is(err, view.ErrUnknownMode):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return err
}

// act runs one transition on a view, records it and returns the new state.
func (h *Handler) act(c echo.Context, action string, fn func(view.View) (selection.Outcome, error)) error {
	id := c.Param("id")
	var mode view.Mode
	var outcome selection.Outcome
	st, err := h.registry.Load().Do(id, func(v view.View) error {
		mode = v.Mode()
		var err error
		outcome, err = fn(v)
		return err
	})
	if err != nil {
		return toHTTPError(err)
	}

	h.metrics.ObserveClick(string(mode), action, string(outcome))
	slog.Debug("view transition", "view", id, "mode", mode, "action", action, "outcome", outcome)
	return c.JSON(http.StatusOK, st)
}

// etagMatches applies the weak comparison of If-None-Match: any listed tag,
// with or without W/, or "*".
func etagMatches(header, etag string) bool {
	for _, tag := range strings.Split(header, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "*" || strings.TrimPrefix(tag, "W/") == etag {
			return true
		}
	}
	return false
}

func wrongMode(action string, mode view.Mode) error {
	return fmt.Errorf("%w: %s on a %s view", view.ErrWrongMode, action, mode)
}

// --- HANDLERS ---

func (h *Handler) Health(c echo.Context) error {
	if h.registry.Load() == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "loading"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// GetCountries lists the relevant country names for a mode, paginated.
func (h *Handler) GetCountries(c echo.Context) error {
	factory := h.registry.Load().Factory()
	mode, err := factory.ParseMode(c.QueryParam("mode"))
	if err != nil {
		return toHTTPError(err)
	}

	names := factory.Countries(mode)
	total := len(names)
	limit, offset := getPaginationParams(c, total)

	if offset >= total {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"data": []string{}, "total": total, "limit": limit, "offset": offset,
		})
	}

	end := offset + limit
	if end > total {
		end = total
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":   names[offset:end],
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// GetRateSummary returns the comparison legend.
func (h *Handler) GetRateSummary(c echo.Context) error {
	return c.JSON(http.StatusOK, h.registry.Load().Factory().RateSummary())
}

func (h *Handler) CreateView(c echo.Context) error {
	var req createViewRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if req.Mode == "" {
		req.Mode = c.QueryParam("mode")
	}

	st, err := h.registry.Load().Create(req.Mode)
	if err != nil {
		return toHTTPError(err)
	}
	h.metrics.IncrementViewsCreated(st.Mode)
	slog.Info("view created", "view", st.ID, "mode", st.Mode)
	return c.JSON(http.StatusCreated, st)
}

// GetView returns the current snapshot with an ETag so renderers can poll
// cheaply.
func (h *Handler) GetView(c echo.Context) error {
	st, err := h.registry.Load().Do(c.Param("id"), nil)
	if err != nil {
		return toHTTPError(err)
	}

	body, err := json.Marshal(st)
	if err != nil {
		return err
	}
	etag := fmt.Sprintf(`"%016x"`, xxh3.Hash(body))
	c.Response().Header().Set("ETag", etag)
	if etagMatches(c.Request().Header.Get("If-None-Match"), etag) {
		return c.NoContent(http.StatusNotModified)
	}
	return c.JSONBlob(http.StatusOK, body)
}

func (h *Handler) DeleteView(c echo.Context) error {
	id := c.Param("id")
	if !h.registry.Load().Delete(id) {
		return toHTTPError(fmt.Errorf("%w: %s", view.ErrNotFound, id))
	}
	slog.Info("view deleted", "view", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ClickCountry(c echo.Context) error {
	var req clickRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	return h.act(c, "click", func(v view.View) (selection.Outcome, error) {
		return v.Click(req.Name), nil
	})
}

func (h *Handler) ClickTopic(c echo.Context) error {
	var req topicRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	return h.act(c, "topic", func(v view.View) (selection.Outcome, error) {
		d, ok := v.(*view.DetailView)
		if !ok {
			return "", wrongMode("topic", v.Mode())
		}
		return d.SelectTopic(selection.TopicKey(req.Topic)), nil
	})
}

func (h *Handler) CloseDetail(c echo.Context) error {
	return h.act(c, "close", func(v view.View) (selection.Outcome, error) {
		d, ok := v.(*view.DetailView)
		if !ok {
			return "", wrongMode("close", v.Mode())
		}
		return d.Close(), nil
	})
}

func (h *Handler) ClearComparison(c echo.Context) error {
	return h.act(c, "clear", func(v view.View) (selection.Outcome, error) {
		cv, ok := v.(*view.ComparisonView)
		if !ok {
			return "", wrongMode("clear", v.Mode())
		}
		return cv.ClearAll(), nil
	})
}

// GetStyles evaluates the fill function for a batch of shape names.
func (h *Handler) GetStyles(c echo.Context) error {
	var req stylesRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	var styles []models.ShapeStyle
	_, err := h.registry.Load().Do(c.Param("id"), func(v view.View) error {
		styles = view.Styles(v, req.Names)
		return nil
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, styles)
}
