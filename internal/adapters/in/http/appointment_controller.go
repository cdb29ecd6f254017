package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/medibook/medibook-booking-gateway/internal/core/domain"
	"github.com/medibook/medibook-booking-gateway/internal/core/ports/in"
)

type AppointmentController struct {
	appointments in.AppointmentUseCase
	gate         *SessionGate
}

func NewAppointmentController(appointments in.AppointmentUseCase, gate *SessionGate) *AppointmentController {
	return &AppointmentController{
		appointments: appointments,
		gate:         gate,
	}
}

func (c *AppointmentController) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1/appointments")

	api.GET("/mine", c.gate.RequireAuth(domain.RolePatient), c.mine)

	admin := api.Group("", c.gate.RequireAuth(domain.RoleAdmin))
	admin.GET("", c.list)
	admin.GET("/history/:email", c.history)
	admin.PATCH("/:id/status", c.updateStatus)
	admin.PATCH("/:id/diagnosis", c.saveDiagnosis)
	admin.GET("/:id/prescription", c.prescription)
}

func (c *AppointmentController) list(ctx *gin.Context) {
	views, err := c.appointments.List(ctx.Request.Context())
	if err != nil {
		c.gate.RespondError(ctx, err, domain.MsgAppointmentLoad)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"appointments": views})
}

func (c *AppointmentController) mine(ctx *gin.Context) {
	views, err := c.appointments.Mine(ctx.Request.Context())
	if err != nil {
		c.gate.RespondError(ctx, err, domain.MsgAppointmentLoad)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"appointments": views})
}

func (c *AppointmentController) history(ctx *gin.Context) {
	views, err := c.appointments.History(ctx.Request.Context(), ctx.Param("email"))
	if err != nil {
		c.gate.RespondError(ctx, err, domain.MsgAppointmentLoad)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"appointments": views})
}

func (c *AppointmentController) updateStatus(ctx *gin.Context) {
	id, err := appointmentID(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := domain.AppointmentStatus(ctx.Query("status"))
	if !status.Valid() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown status %q", ctx.Query("status"))})
		return
	}

	views, err := c.appointments.UpdateStatus(ctx.Request.Context(), id, status)
	if err != nil {
		c.gate.RespondError(ctx, err, "Error al actualizar el estado de la cita.")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"appointments": views})
}

type diagnosisRequest struct {
	Diagnosis string `json:"diagnosis" binding:"required"`
	Treatment string `json:"treatment" binding:"required"`
}

func (c *AppointmentController) saveDiagnosis(ctx *gin.Context) {
	id, err := appointmentID(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req diagnosisRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	views, err := c.appointments.SaveDiagnosis(ctx.Request.Context(), id, req.Diagnosis, req.Treatment)
	if err != nil {
		c.gate.RespondError(ctx, err, "Error al guardar la historia clínica.")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"appointments": views})
}

func (c *AppointmentController) prescription(ctx *gin.Context) {
	id, err := appointmentID(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pdf, err := c.appointments.Prescription(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrPrescriptionUnavailable) {
			ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.gate.RespondError(ctx, err, "Error al descargar la receta.")
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receta_%d.pdf", id))
	ctx.Data(http.StatusOK, "application/pdf", pdf)
}

func appointmentID(ctx *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid appointment id %q", ctx.Param("id"))
	}
	return id, nil
}
