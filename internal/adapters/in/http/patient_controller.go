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

type PatientController struct {
	patients in.PatientUseCase
	gate     *SessionGate
}

func NewPatientController(patients in.PatientUseCase, gate *SessionGate) *PatientController {
	return &PatientController{
		patients: patients,
		gate:     gate,
	}
}

func (c *PatientController) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1/patients", c.gate.RequireAuth(domain.RoleAdmin))
	api.GET("", c.list)
	api.GET("/search", c.search)
	api.GET("/:id", c.get)
	api.POST("", c.create)
	api.PUT("/:id", c.update)
}

func (c *PatientController) list(ctx *gin.Context) {
	patients, err := c.patients.List(ctx.Request.Context())
	if err != nil {
		c.gate.RespondError(ctx, err, "No se pudieron cargar los pacientes.")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"patients": patients})
}

// search debounces per session: the pending lookup of a session is dropped
// when the same session sends a newer query, answered with 204 so the
// consumer simply ignores it.
func (c *PatientController) search(ctx *gin.Context) {
	session, _ := SessionFromContext(ctx)

	patients, err := c.patients.Search(ctx.Request.Context(), session.ID, ctx.Query("query"))
	if err != nil {
		if errors.Is(err, domain.ErrSearchSuperseded) {
			ctx.Status(http.StatusNoContent)
			return
		}
		c.gate.RespondError(ctx, err, "No se pudieron buscar pacientes.")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"patients": patients})
}

func (c *PatientController) get(ctx *gin.Context) {
	id, err := patientID(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patient, err := c.patients.Get(ctx.Request.Context(), id)
	if err != nil {
		c.gate.RespondError(ctx, err, "No se pudo cargar el paciente.")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"patient": patient})
}

func (c *PatientController) create(ctx *gin.Context) {
	var patient domain.Patient
	if err := ctx.ShouldBindJSON(&patient); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := c.patients.Create(ctx.Request.Context(), patient)
	if err != nil {
		if errors.Is(err, domain.ErrPatientInvalid) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.gate.RespondError(ctx, err, "No se pudo crear el paciente.")
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"patient": created})
}

func (c *PatientController) update(ctx *gin.Context) {
	id, err := patientID(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var patient domain.Patient
	if err := ctx.ShouldBindJSON(&patient); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := c.patients.Update(ctx.Request.Context(), id, patient)
	if err != nil {
		if errors.Is(err, domain.ErrPatientInvalid) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.gate.RespondError(ctx, err, "No se pudo actualizar el paciente.")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"patient": updated})
}

func patientID(ctx *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid patient id %q", ctx.Param("id"))
	}
	return id, nil
}
