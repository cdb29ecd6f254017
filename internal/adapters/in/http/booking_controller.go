package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/medibook/medibook-booking-gateway/internal/core/domain"
	"github.com/medibook/medibook-booking-gateway/internal/core/jsontypes"
	"github.com/medibook/medibook-booking-gateway/internal/core/ports/in"
	"github.com/medibook/medibook-booking-gateway/internal/core/ports/out"
)

// BookingController is the patient-facing booking flow: the doctors list,
// slot availability per doctor+date and the booking submission itself.
type BookingController struct {
	doctors      in.DoctorUseCase
	availability in.AvailabilityUseCase
	booking      in.BookingUseCase
	gate         *SessionGate
	logger       out.LoggerPort
}

func NewBookingController(
	doctors in.DoctorUseCase,
	availability in.AvailabilityUseCase,
	booking in.BookingUseCase,
	gate *SessionGate,
	logger out.LoggerPort,
) *BookingController {
	return &BookingController{
		doctors:      doctors,
		availability: availability,
		booking:      booking,
		gate:         gate,
		logger:       logger.WithModule("BookingController"),
	}
}

func (c *BookingController) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	api.GET("/doctors", c.gate.RequireAuth(), c.listDoctors)
	api.GET("/availability", c.gate.RequireAuth(), c.availableSlots)
	api.POST("/appointments/book", c.gate.RequireAuth(domain.RolePatient), c.book)
}

func (c *BookingController) listDoctors(ctx *gin.Context) {
	doctors, err := c.doctors.List(ctx.Request.Context())
	if err != nil {
		c.gate.RespondError(ctx, err, domain.MsgDoctorsLoad)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"doctors": doctors})
}

type availabilityQuery struct {
	DoctorID int64  `form:"doctorId" binding:"required"`
	Date     string `form:"date" binding:"required"`
}

// availableSlots applies the fail-open policy the resolver refuses to hide:
// when taken slots cannot be fetched, the full default day is offered and
// the response is marked degraded.
func (c *BookingController) availableSlots(ctx *gin.Context) {
	var query availabilityQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := jsontypes.ParseCivilDate(query.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, expected YYYY-MM-DD"})
		return
	}

	if date.IsWeekend() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": domain.MsgWeekendRejected})
		return
	}

	slots, err := c.availability.AvailableSlots(ctx.Request.Context(), query.DoctorID, date)
	degraded := false
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			c.gate.RespondError(ctx, err, "")
			return
		}
		c.logger.Warn("availability.fail_open", out.LogFields{
			"doctorId": query.DoctorID,
			"date":     date.String(),
			"error":    err.Error(),
		})
		slots = c.availability.DefaultDaySlots()
		degraded = true
	}

	response := gin.H{
		"doctorId": query.DoctorID,
		"date":     date.String(),
		"slots":    slots,
		"degraded": degraded,
	}
	if len(slots) == 0 {
		response["message"] = domain.MsgScheduleFull
	}

	ctx.JSON(http.StatusOK, response)
}

type bookRequest struct {
	DoctorID int64  `json:"doctorId" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
}

func (c *BookingController) book(ctx *gin.Context) {
	var req bookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := jsontypes.ParseCivilDate(req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, expected YYYY-MM-DD"})
		return
	}

	slot, err := jsontypes.ParseClockTime(req.Time)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid time format, expected HH:MM"})
		return
	}

	session, _ := SessionFromContext(ctx)

	appointment, err := c.booking.Book(ctx.Request.Context(), session, domain.BookingRequest{
		DoctorID: req.DoctorID,
		Date:     date,
		Time:     slot,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrWeekendDate):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": domain.MsgWeekendRejected})
		case errors.Is(err, domain.ErrSlotTaken):
			ctx.JSON(http.StatusConflict, gin.H{"error": domain.MsgSlotTaken})
		default:
			c.gate.RespondError(ctx, err, domain.MsgBookingFailed)
		}
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"appointment": appointment})
}
