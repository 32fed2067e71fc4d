package fiber

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"

	"website-stats-service/internal/auth"
	"website-stats-service/internal/platform/logger"
	"website-stats-service/internal/platform/middleware"
	"website-stats-service/internal/platform/validation"
	"website-stats-service/internal/stats/core/domain"
	"website-stats-service/internal/stats/core/usecase"
	websites "website-stats-service/internal/websites/core/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// maxEpochMillis is the largest instant a JavaScript Date can hold.
const maxEpochMillis = 8.64e15

var errTimestampOutOfRange = errors.New("timestamp out of range")

type GetWebsiteStatsUseCase interface {
	Execute(ctx context.Context, in usecase.GetWebsiteStatsInput) (domain.WebsiteStats, error)
}

type WebsiteAuthorizer interface {
	Execute(ctx context.Context, v websites.Viewer, websiteID string) (bool, error)
}

type StatsHandler struct {
	uc       GetWebsiteStatsUseCase
	authz    WebsiteAuthorizer
	validate *validator.Validate
	log      zerolog.Logger
}

func NewStatsHandler(uc GetWebsiteStatsUseCase, authz WebsiteAuthorizer) *StatsHandler {
	return &StatsHandler{
		uc:       uc,
		authz:    authz,
		validate: validation.New(),
		log:      logger.Component("stats"),
	}
}

// Register mounts the stats route. Interceptors run in order: method guard,
// authentication, validation, handler.
func (h *StatsHandler) Register(r fiber.Router, authenticate fiber.Handler) {
	r.All("/websites/:websiteId/stats",
		middleware.AllowMethods(fiber.MethodGet),
		authenticate,
		middleware.Validate(h.Schemas()),
		h.GetWebsiteStats,
	)
}

// Schemas returns the request schema per method.
func (h *StatsHandler) Schemas() map[string]middleware.Schema {
	return map[string]middleware.Schema{
		fiber.MethodGet: func(c *fiber.Ctx) (any, error) {
			return h.bind(c)
		},
	}
}

func (h *StatsHandler) bind(c *fiber.Ctx) (WebsiteStatsQuery, error) {
	var q WebsiteStatsQuery
	if err := c.QueryParser(&q); err != nil {
		return q, err
	}
	if err := c.ParamsParser(&q); err != nil {
		return q, err
	}
	return q, h.validate.Struct(q)
}

// GetWebsiteStats godoc
// @Summary Website stats with period-over-period change
// @Description Returns each metric of the window [startAt, endAt] with its change against the window of the same length right before it
// @Tags Stats
// @Produce json
// @Security BearerAuth
// @Param websiteId path string true "Website ID (UUID)"
// @Param startAt query number true "Window start, unix milliseconds (0 with endAt=1 means all time)"
// @Param endAt query number true "Window end, unix milliseconds"
// @Param url query string false "URL path"
// @Param urls query string false "Paths separated by |, e.g. /a|/b"
// @Param referrer query string false "Referrer domain"
// @Param title query string false "Page title"
// @Param query query string false "URL query"
// @Param event query string false "Custom event name"
// @Param os query string false "Operating system"
// @Param browser query string false "Browser"
// @Param device query string false "Device"
// @Param country query string false "Country code"
// @Param region query string false "Region code"
// @Param city query string false "City"
// @Success 200 {object} WebsiteStatsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 405 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/websites/{websiteId}/stats [get]
func (h *StatsHandler) GetWebsiteStats(c *fiber.Ctx) error {
	q, ok := middleware.Validated[WebsiteStatsQuery](c)
	if !ok {
		var err error
		if q, err = h.bind(c); err != nil {
			return badRequest(c, err)
		}
	}

	ctx := c.UserContext()

	allowed, err := h.authz.Execute(ctx, viewerOf(auth.FromCtx(c)), q.WebsiteID)
	if err != nil {
		return h.internalError(c, err)
	}
	if !allowed {
		return c.Status(http.StatusUnauthorized).JSON(ErrorResponse{
			Error: "unauthorized",
		})
	}

	startAt, err := parseMillis(q.StartAt)
	if err != nil {
		return badRequest(c, err)
	}
	endAt, err := parseMillis(q.EndAt)
	if err != nil {
		return badRequest(c, err)
	}

	in := usecase.GetWebsiteStatsInput{
		WebsiteID: q.WebsiteID,
		StartAt:   startAt,
		EndAt:     endAt,
		Filters:   q.Filters(),
	}

	res, err := h.uc.Execute(ctx, in)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidStatsQuery):
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_stats_query",
				Message: err.Error(),
			})
		case errors.Is(err, usecase.ErrInvalidTimeRange):
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_time_range",
				Message: err.Error(),
			})
		default:
			return h.internalError(c, err)
		}
	}

	resp := make(WebsiteStatsResponse, len(res))
	for name, m := range res {
		resp[name] = MetricChangeResponse{
			Value:  m.Value,
			Change: m.Change,
		}
	}

	return c.Status(http.StatusOK).JSON(resp)
}

func (h *StatsHandler) internalError(c *fiber.Ctx, err error) error {
	h.log.Error().Err(err).Str("path", c.Path()).Msg("website stats failed")
	return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
		Error: "internal_server_error",
	})
}

func badRequest(c *fiber.Ctx, err error) error {
	resp := ErrorResponse{Error: "validation_error", Message: err.Error()}
	if fields, ok := validation.FieldErrors(err); ok {
		resp.Message = "request validation failed"
		resp.Fields = fields
	}
	return c.Status(http.StatusBadRequest).JSON(resp)
}

func viewerOf(a *auth.Context) websites.Viewer {
	if a == nil {
		return websites.Viewer{}
	}
	return websites.Viewer{
		UserID:         a.UserID,
		IsAdmin:        a.IsAdmin(),
		ShareWebsiteID: a.ShareWebsiteID,
	}
}

// parseMillis accepts any numeric string and truncates it to whole milliseconds.
func parseMillis(s string) (int64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.Abs(f) > maxEpochMillis {
		return 0, errTimestampOutOfRange
	}
	return int64(math.Trunc(f)), nil
}
