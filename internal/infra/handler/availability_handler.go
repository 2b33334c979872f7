package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-availability/internal/app"
)

type AvailabilityHandler struct {
	useCase app.AvailabilityUseCase
}

func NewAvailabilityHandler(useCase app.AvailabilityUseCase) *AvailabilityHandler {
	return &AvailabilityHandler{
		useCase: useCase,
	}
}

func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.Param("user_id")

	slog.InfoContext(ctx, "handling get availability request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"user_id", userID,
	)

	var req GetAvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.bindError(c, err)

		return
	}

	output, err := h.useCase.GetAvailability(ctx, app.GetAvailabilityInput{
		UserID:      userID,
		Start:       req.Start,
		End:         req.End,
		Timezone:    req.Timezone,
		SlotMinutes: req.SlotMinutes,
	})
	if err != nil {
		h.handleError(c, err)

		return
	}

	slog.InfoContext(ctx, "availability computed successfully",
		"user_id", userID,
		"count", output.Count,
		"degraded", output.Degraded,
	)
	c.JSON(http.StatusOK, FromAvailabilityDTO(output))
}

func (h *AvailabilityHandler) GetWorkPreferences(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.Param("user_id")

	slog.InfoContext(ctx, "handling get work preferences request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"user_id", userID,
	)

	output, err := h.useCase.GetWorkPreferences(ctx, app.GetWorkPreferencesInput{UserID: userID})
	if err != nil {
		h.handleError(c, err)

		return
	}

	c.JSON(http.StatusOK, FromPreferencesDTO(output))
}

func (h *AvailabilityHandler) PutWorkPreferences(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.Param("user_id")

	slog.InfoContext(ctx, "handling put work preferences request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"user_id", userID,
	)

	var req PutWorkPreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)

		return
	}

	output, err := h.useCase.PutWorkPreferences(ctx, app.PutWorkPreferencesInput{
		UserID: userID,
		Starts: toWorkingHoursInputs(req.Starts),
		Ends:   toWorkingHoursInputs(req.Ends),
	})
	if err != nil {
		h.handleError(c, err)

		return
	}

	slog.InfoContext(ctx, "work preferences replaced successfully",
		"user_id", userID,
	)
	c.JSON(http.StatusOK, FromPreferencesDTO(output))
}

func toWorkingHoursInputs(reqs []WorkingHoursRequest) []app.WorkingHoursInput {
	inputs := make([]app.WorkingHoursInput, 0, len(reqs))
	for _, r := range reqs {
		inputs = append(inputs, app.WorkingHoursInput{
			Weekday: r.Weekday,
			Hour:    r.Hour,
			Minute:  r.Minute,
		})
	}

	return inputs
}

func (h *AvailabilityHandler) CreateBusyEvent(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.Param("user_id")

	slog.InfoContext(ctx, "handling create busy event request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"user_id", userID,
	)

	var req CreateBusyEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)

		return
	}

	output, err := h.useCase.CreateBusyEvent(ctx, app.CreateBusyEventInput{
		UserID:   userID,
		Start:    req.Start,
		End:      req.End,
		Timezone: req.Timezone,
	})
	if err != nil {
		h.handleError(c, err)

		return
	}

	slog.InfoContext(ctx, "busy event created successfully",
		"busy_event_id", output.ID,
	)
	c.JSON(http.StatusCreated, FromBusyEventDTO(output))
}

func (h *AvailabilityHandler) ListBusyEvents(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.Param("user_id")

	slog.InfoContext(ctx, "handling list busy events request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"user_id", userID,
	)

	var req ListBusyEventsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.bindError(c, err)

		return
	}

	output, err := h.useCase.ListBusyEvents(ctx, app.ListBusyEventsInput{
		UserID: userID,
		Start:  req.Start,
		End:    req.End,
	})
	if err != nil {
		h.handleError(c, err)

		return
	}

	c.JSON(http.StatusOK, FromBusyEventDTOs(output))
}

func (h *AvailabilityHandler) DeleteBusyEvent(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	slog.InfoContext(ctx, "handling delete busy event request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"busy_event_id", id,
	)

	err := h.useCase.DeleteBusyEvent(ctx, app.DeleteBusyEventInput{
		UserID: c.Param("user_id"),
		ID:     id,
	})
	if err != nil {
		h.handleError(c, err)

		return
	}

	slog.InfoContext(ctx, "busy event deleted successfully",
		"busy_event_id", id,
	)
	c.Status(http.StatusNoContent)
}

func (h *AvailabilityHandler) bindError(c *gin.Context, err error) {
	slog.WarnContext(c.Request.Context(), "request validation failed",
		"error", err,
		"path", c.Request.URL.Path,
	)
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "validation_error",
		Message: err.Error(),
		Field:   "",
	})
}

func (h *AvailabilityHandler) handleError(c *gin.Context, err error) {
	var validationErr *app.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: validationErr.Message,
			Field:   validationErr.Field,
		})

		return
	}

	if errors.Is(err, app.ErrNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: "resource not found",
			Field:   "",
		})

		return
	}

	slog.ErrorContext(c.Request.Context(), "request failed",
		"error", err,
		"path", c.Request.URL.Path,
	)
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "an internal error occurred",
		Field:   "",
	})
}

func (h *AvailabilityHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users/:user_id")
	{
		users.GET("/availability", h.GetAvailability)
		users.GET("/preferences", h.GetWorkPreferences)
		users.PUT("/preferences", h.PutWorkPreferences)
		users.POST("/busy-events", h.CreateBusyEvent)
		users.GET("/busy-events", h.ListBusyEvents)
		users.DELETE("/busy-events/:id", h.DeleteBusyEvent)
	}
}
