package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/medibook/medibook-booking-gateway/internal/core/ports/in"
	"github.com/medibook/medibook-booking-gateway/internal/core/ports/out"
)

type AuthController struct {
	auth in.AuthUseCase
	gate *SessionGate
}

func NewAuthController(auth in.AuthUseCase, gate *SessionGate) *AuthController {
	return &AuthController{
		auth: auth,
		gate: gate,
	}
}

func (c *AuthController) RegisterRoutes(router *gin.Engine) {
	router.POST("/auth/login", c.login)
	router.POST("/auth/register", c.register)
	router.POST("/auth/logout", c.logout)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (c *AuthController) login(ctx *gin.Context) {
	var req loginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := c.auth.Login(ctx.Request.Context(), out.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.gate.RespondError(ctx, err, "credenciales inválidas")
		return
	}

	ctx.SetCookie(SessionCookie, session.ID, 0, "/", "", false, true)
	ctx.JSON(http.StatusOK, gin.H{
		"sessionId": session.ID,
		"role":      session.Role,
		"patientId": session.PatientID,
	})
}

type registerRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	Phone     string `json:"phone"`
	DNI       string `json:"dni"`
}

func (c *AuthController) register(ctx *gin.Context) {
	var req registerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := c.auth.Register(ctx.Request.Context(), out.RegisterRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Phone:     req.Phone,
		DNI:       req.DNI,
	})
	if err != nil {
		c.gate.RespondError(ctx, err, "no se pudo completar el registro")
		return
	}

	ctx.Status(http.StatusCreated)
}

func (c *AuthController) logout(ctx *gin.Context) {
	if session, exists := SessionFromContext(ctx); exists {
		c.auth.Logout(ctx.Request.Context(), session.ID)
	}

	ctx.SetCookie(SessionCookie, "", -1, "/", "", false, true)
	ctx.JSON(http.StatusOK, gin.H{"redirect": loginRoute})
}
