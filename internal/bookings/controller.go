package bookings

import (
	"net/http"
	"strconv"

	"courtly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

// CreateHold handles POST /api/v1/holds
func (c *Controller) CreateHold(ctx *gin.Context) {
	playerID, ok := playerIDFromContext(ctx)
	if !ok {
		return
	}

	var req CreateHoldRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	stationIDs, err := parseUUIDs(req.StationIDs)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid station id", nil, err.Error())
		return
	}

	result, err := c.service.RequestHold(ctx.Request.Context(), HoldRequest{
		PlayerID:    playerID,
		StationIDs:  stationIDs,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		BookingType: BookingType(req.BookingType),
	})
	if err != nil {
		respondError(ctx, err, "Failed to create hold")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Hold created", NewHoldResponse(result), nil)
}

// ConfirmHold handles POST /api/v1/holds/:id/confirm
func (c *Controller) ConfirmHold(ctx *gin.Context) {
	if _, ok := playerIDFromContext(ctx); !ok {
		return
	}

	intentID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid intent id", nil, nil)
		return
	}

	var req ConfirmHoldRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	booking, err := c.service.Confirm(ctx.Request.Context(), intentID, PaymentOutcome{
		Reference:     req.PaymentReference,
		Succeeded:     req.PaymentStatus == "SUCCEEDED",
		FailureReason: req.FailureReason,
	})
	if err != nil {
		respondError(ctx, err, "Failed to confirm hold")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Booking confirmed", NewBookingResponse(booking), nil)
}

// CancelHold handles POST /api/v1/holds/:id/cancel
func (c *Controller) CancelHold(ctx *gin.Context) {
	if _, ok := playerIDFromContext(ctx); !ok {
		return
	}

	intentID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid intent id", nil, nil)
		return
	}

	if err := c.service.Cancel(ctx.Request.Context(), intentID); err != nil {
		respondError(ctx, err, "Failed to cancel hold")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Hold cancelled", nil, nil)
}

// GetAvailability handles GET /api/v1/availability
func (c *Controller) GetAvailability(ctx *gin.Context) {
	var query AvailabilityQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	stationIDs, err := parseUUIDs(query.StationIDs)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid station id", nil, err.Error())
		return
	}

	bookings, err := c.service.GetOverlappingBookings(ctx.Request.Context(), stationIDs, query.StartTime, query.EndTime)
	if err != nil {
		respondError(ctx, err, "Failed to query availability")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Overlapping bookings", NewBookingListResponse(bookings), nil)
}

// GetBooking handles GET /api/v1/bookings/:id
func (c *Controller) GetBooking(ctx *gin.Context) {
	playerID, ok := playerIDFromContext(ctx)
	if !ok {
		return
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking id", nil, nil)
		return
	}

	booking, err := c.service.GetBooking(ctx.Request.Context(), bookingID)
	if err != nil {
		respondError(ctx, err, "Failed to fetch booking")
		return
	}

	if booking.PlayerID != playerID {
		response.RespondJSON(ctx, "error", http.StatusForbidden, "Access denied", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking retrieved", NewBookingResponse(booking), nil)
}

// GetPlayerBookings handles GET /api/v1/bookings
func (c *Controller) GetPlayerBookings(ctx *gin.Context) {
	playerID, ok := playerIDFromContext(ctx)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))

	bookings, err := c.service.GetPlayerBookings(ctx.Request.Context(), playerID, limit, offset)
	if err != nil {
		respondError(ctx, err, "Failed to fetch bookings")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings retrieved", NewBookingListResponse(bookings), nil)
}

// respondError maps booking-core error kinds to client-facing statuses.
// Unknown errors are reported as internal failures without detail.
func respondError(ctx *gin.Context, err error, message string) {
	if kind, ok := KindOf(err); ok {
		response.RespondJSON(ctx, "error", kind.HTTPStatus(), message, nil, gin.H{
			"kind":      string(kind),
			"detail":    err.Error(),
			"retryable": kind.Retryable(),
		})
		return
	}
	response.RespondJSON(ctx, "error", http.StatusInternalServerError, message, nil, nil)
}

func playerIDFromContext(ctx *gin.Context) (uuid.UUID, bool) {
	raw, exists := ctx.Get("player_id")
	if !exists {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Player not authenticated", nil, nil)
		return uuid.Nil, false
	}

	str, ok := raw.(string)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Invalid player id format", nil, nil)
		return uuid.Nil, false
	}

	playerID, err := uuid.Parse(str)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid player id", nil, nil)
		return uuid.Nil, false
	}

	return playerID, true
}

func parseUUIDs(raw []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
