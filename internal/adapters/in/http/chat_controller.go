package http

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/suchimauz/appointment-reminder-bot/internal/adapters/out/chat"
	"github.com/suchimauz/appointment-reminder-bot/internal/config"
	"github.com/suchimauz/appointment-reminder-bot/internal/core/domain"
	"github.com/suchimauz/appointment-reminder-bot/internal/core/ports/in"
	"github.com/suchimauz/appointment-reminder-bot/internal/core/ports/out"
)

type CaptureSnapshotter interface {
	Snapshot() chat.CaptureSurfaceSnapshot
}

type ChatController struct {
	conversation in.ConversationUseCase
	appointments in.AppointmentUseCase
	profiles     out.ProfilePort
	transcript   out.TranscriptPort
	view         out.AppointmentViewPort
	surface      CaptureSnapshotter
	cfg          *config.Config
	logger       out.LoggerPort
}

func NewChatController(
	conversation in.ConversationUseCase,
	appointments in.AppointmentUseCase,
	profiles out.ProfilePort,
	transcript out.TranscriptPort,
	view out.AppointmentViewPort,
	surface CaptureSnapshotter,
	cfg *config.Config,
	logger out.LoggerPort,
) *ChatController {
	return &ChatController{
		conversation: conversation,
		appointments: appointments,
		profiles:     profiles,
		transcript:   transcript,
		view:         view,
		surface:      surface,
		cfg:          cfg,
		logger:       logger.WithModule("ChatController"),
	}
}

func (c *ChatController) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	if c.cfg.HTTP.Username != "" {
		api.Use(c.basicAuth())
	}
	{
		api.GET("/transcript", c.getTranscript)
		api.POST("/messages", c.postMessage)

		api.GET("/capture", c.getCapture)
		api.POST("/capture/date", c.pickDate)
		api.POST("/capture/time", c.pickTime)
		api.POST("/capture/subject", c.confirmSubject)
		api.DELETE("/capture/subject", c.dismissSubject)

		api.GET("/settings", c.getSettings)
		api.PUT("/settings", c.putSettings)

		api.GET("/appointments", c.listAppointments)
		api.GET("/appointments/:id/edit", c.requestEdit)
		api.PUT("/appointments/:id", c.editAppointment)
		api.DELETE("/appointments/:id", c.deleteAppointment)
	}
}

type MessageRequest struct {
	Text string `json:"text"`
}

type PickDateRequest struct {
	Date string `json:"date"`
}

type PickTimeRequest struct {
	Hour     int    `json:"hour"`
	Minute   int    `json:"minute"`
	Meridiem string `json:"meridiem"`
}

type SubjectRequest struct {
	Subject string `json:"subject"`
}

type EditAppointmentRequest struct {
	Subject string `json:"subject"`
	DateStr string `json:"date_str"`
}

func (c *ChatController) getTranscript(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"messages": c.transcript.Messages()})
}

func (c *ChatController) postMessage(ctx *gin.Context) {
	var req MessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	classification, err := c.conversation.HandleMessage(ctx.Request.Context(), req.Text)
	if err != nil {
		c.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, classification)
}

func (c *ChatController) getCapture(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"state":   c.conversation.CaptureState(),
		"surface": c.surface.Snapshot(),
	})
}

func (c *ChatController) pickDate(ctx *gin.Context) {
	var req PickDateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := c.conversation.PickDate(ctx.Request.Context(), req.Date)
	if err != nil {
		c.writeError(ctx, err)
		return
	}
	c.writeCapture(ctx, state)
}

func (c *ChatController) pickTime(ctx *gin.Context) {
	var req PickTimeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := c.conversation.PickTime(ctx.Request.Context(), req.Hour, req.Minute, req.Meridiem)
	if err != nil {
		c.writeError(ctx, err)
		return
	}
	c.writeCapture(ctx, state)
}

func (c *ChatController) confirmSubject(ctx *gin.Context) {
	var req SubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	classification, err := c.conversation.ConfirmSubject(ctx.Request.Context(), req.Subject)
	if err != nil {
		c.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, classification)
}

func (c *ChatController) dismissSubject(ctx *gin.Context) {
	dismissed := c.conversation.DismissSubject(ctx.Request.Context())
	ctx.JSON(http.StatusOK, gin.H{
		"dismissed": dismissed,
		"state":     c.conversation.CaptureState(),
	})
}

func (c *ChatController) getSettings(ctx *gin.Context) {
	profile, err := c.profiles.Load(ctx.Request.Context())
	if err != nil {
		c.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, profile)
}

func (c *ChatController) putSettings(ctx *gin.Context) {
	var profile domain.ContactProfile
	if err := ctx.ShouldBindJSON(&profile); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := c.profiles.Save(ctx.Request.Context(), profile); err != nil {
		c.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, profile)
}

func (c *ChatController) listAppointments(ctx *gin.Context) {
	view, err := c.appointments.Refresh(ctx.Request.Context())
	if err != nil && view.State == "" {
		c.writeError(ctx, err)
		return
	}
	// Ошибка загрузки уже отражена в состоянии списка
	ctx.JSON(http.StatusOK, view)
}

func (c *ChatController) requestEdit(ctx *gin.Context) {
	id, ok := c.appointmentID(ctx)
	if !ok {
		return
	}

	form, err := c.appointments.RequestEdit(ctx.Request.Context(), id)
	if err != nil {
		c.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, form)
}

func (c *ChatController) editAppointment(ctx *gin.Context) {
	id, ok := c.appointmentID(ctx)
	if !ok {
		return
	}

	var req EditAppointmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := c.appointments.Edit(ctx.Request.Context(), id, req.Subject, req.DateStr); err != nil {
		c.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, c.view.Current())
}

// deleteAppointment treats ?confirm=true as the user's answer to the confirmation prompt.
func (c *ChatController) deleteAppointment(ctx *gin.Context) {
	id, ok := c.appointmentID(ctx)
	if !ok {
		return
	}

	confirmed := ctx.Query("confirm") == "true"
	gate := in.ConfirmFunc(func(_ context.Context, prompt string) bool {
		if !confirmed {
			ctx.Header("X-Confirm-Prompt", prompt)
		}
		return confirmed
	})

	deleted, err := c.appointments.RequestDelete(ctx.Request.Context(), id, gate)
	if err != nil {
		c.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"deleted": deleted,
		"view":    c.view.Current(),
	})
}

func (c *ChatController) appointmentID(ctx *gin.Context) (int, bool) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment ID format"})
		return 0, false
	}
	return id, true
}

func (c *ChatController) writeCapture(ctx *gin.Context, state domain.CaptureState) {
	ctx.JSON(http.StatusOK, gin.H{
		"state":   state,
		"surface": c.surface.Snapshot(),
	})
}

func (c *ChatController) writeError(ctx *gin.Context, err error) {
	var (
		validation *domain.ValidationError
		rejection  *domain.ServerRejection
		transport  *domain.TransportError
	)

	switch {
	case errors.As(err, &validation):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": validation.Message})
	case errors.As(err, &rejection):
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": rejection.Message})
	case errors.As(err, &transport):
		ctx.JSON(http.StatusBadGateway, gin.H{"error": transport.UserMessage()})
	case errors.Is(err, domain.ErrEditItemNotVisible):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.logger.Error("http.request.failed", out.LogFields{
			"path":  ctx.FullPath(),
			"error": err.Error(),
		})
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (c *ChatController) basicAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		username, password, hasAuth := ctx.Request.BasicAuth()
		if !hasAuth {
			ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		if subtle.ConstantTimeCompare([]byte(username), []byte(c.cfg.HTTP.Username)) != 1 ||
			subtle.ConstantTimeCompare([]byte(password), []byte(c.cfg.HTTP.Password)) != 1 {
			ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		ctx.Next()
	}
}
