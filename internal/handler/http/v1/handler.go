package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/citywatch/alert_service/internal/config"
	"github.com/citywatch/alert_service/internal/models"
	"github.com/citywatch/alert_service/internal/store"
)

type Handler struct {
	sessions store.SessionStore
	alerts   store.AlertStore
	logger   *logrus.Logger
	validate *validator.Validate
	cfg      *config.Config
}

func NewHandler(sessions store.SessionStore, alerts store.AlertStore, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		sessions: sessions,
		alerts:   alerts,
		logger:   logger,
		validate: validator.New(),
		cfg:      cfg,
	}
}

// @Summary Log in with a demo account
// @Description Authenticate against the fixed demo credential directory.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login request"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Invalid username or password"
// @Router /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input LoginRequest
	log := h.logger.WithField("method", "login")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.sessions.Login(c.Request.Context(), input.Username, input.Password); err != nil {
		h.storeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, SnapshotToSessionResponse(h.sessions.Snapshot()))
}

// @Summary Log out
// @Description Clear the current session identity.
// @Tags Auth
// @Produce json
// @Success 204 "No Content"
// @Router /auth/logout [post]
func (h *Handler) logout(c *gin.Context) {
	h.sessions.Logout()
	c.Status(http.StatusNoContent)
}

// @Summary Get the current session
// @Description Get the current session snapshot.
// @Tags Auth
// @Produce json
// @Success 200 {object} SessionResponse
// @Router /auth/session [get]
func (h *Handler) getSession(c *gin.Context) {
	c.JSON(http.StatusOK, SnapshotToSessionResponse(h.sessions.Snapshot()))
}

// @Summary Get a list of alerts
// @Description Refresh and list alerts, newest first. Optional category and status filters.
// @Tags Alerts
// @Produce json
// @Param category query string false "Filter by category" Enums(police, fire_department, civil_defense)
// @Param status query string false "Filter by status" Enums(pending, in_progress, resolved)
// @Success 200 {array} AlertResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /alerts [get]
func (h *Handler) listAlerts(c *gin.Context) {
	log := h.logger.WithField("method", "listAlerts")

	if err := h.alerts.FetchAlerts(c.Request.Context()); err != nil {
		log.WithError(err).Error("Failed to fetch alerts from store")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	snap := h.alerts.Snapshot()
	alerts := snap.Alerts

	if category := c.Query("category"); category != "" {
		alerts = filterAlerts(alerts, func(a models.Alert) bool {
			return a.Category == models.Category(category)
		})
	}
	if status := c.Query("status"); status != "" {
		alerts = filterAlerts(alerts, func(a models.Alert) bool {
			return a.Status == models.Status(status)
		})
	}

	c.JSON(http.StatusOK, ModelsToAlertResponses(alerts))
}

// @Summary Create a new alert
// @Description Create a new alert. Requires an authenticated session.
// @Tags Alerts
// @Accept json
// @Produce json
// @Param alert body CreateAlertRequest true "Alert creation request"
// @Success 201 {object} AlertResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Authentication required"
// @Router /alerts [post]
func (h *Handler) createAlert(c *gin.Context) {
	var input CreateAlertRequest
	log := h.logger.WithField("method", "createAlert")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	alert, err := h.alerts.CreateAlert(c.Request.Context(), DTOToCreateAlertInput(input))
	if err != nil {
		log.WithError(err).Warn("Failed to create alert in store")
		h.storeError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToAlertResponse(alert))
}

// @Summary Get alert by ID
// @Description Get a single alert with the canResolve flag for the current user.
// @Tags Alerts
// @Produce json
// @Param id path string true "Alert ID"
// @Success 200 {object} AlertDetailResponse
// @Failure 404 {object} map[string]string "Alert not found"
// @Router /alerts/{id} [get]
func (h *Handler) getAlert(c *gin.Context) {
	id := c.Param("id")

	alert, ok := h.alerts.AlertByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "alert not found"})
		return
	}

	user, _ := h.sessions.CurrentUser()
	c.JSON(http.StatusOK, AlertDetailResponse{
		AlertResponse: *ModelToAlertResponse(alert),
		CanResolve:    models.CanResolve(user, alert),
	})
}

// @Summary Update alert status
// @Description Advance the alert status. Transitions never move backward; resolving requires an admin or a member of the alert's department.
// @Tags Alerts
// @Accept json
// @Produce json
// @Param id path string true "Alert ID"
// @Param status body UpdateAlertStatusRequest true "Status update request"
// @Success 200 {object} AlertResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 403 {object} map[string]string "Not allowed to resolve this alert"
// @Failure 404 {object} map[string]string "Alert not found"
// @Failure 409 {object} map[string]string "Backward status transition"
// @Router /alerts/{id}/status [patch]
func (h *Handler) updateAlertStatus(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "updateAlertStatus").WithField("id", id)

	var input UpdateAlertStatusRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.alerts.UpdateAlertStatus(c.Request.Context(), id, input.Status); err != nil {
		log.WithError(err).Warn("Failed to update alert status in store")
		h.storeError(c, log, err)
		return
	}

	alert, ok := h.alerts.AlertByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "alert not found"})
		return
	}
	c.JSON(http.StatusOK, ModelToAlertResponse(alert))
}

// @Summary Get responses for an alert
// @Description Refresh and list responses of one alert, oldest first.
// @Tags Responses
// @Produce json
// @Param id path string true "Alert ID"
// @Success 200 {array} ResponseItem
// @Failure 404 {object} map[string]string "Alert not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /alerts/{id}/responses [get]
func (h *Handler) listResponses(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "listResponses").WithField("id", id)

	if _, ok := h.alerts.AlertByID(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "alert not found"})
		return
	}

	if err := h.alerts.FetchResponses(c.Request.Context(), id); err != nil {
		log.WithError(err).Error("Failed to fetch responses from store")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	snap := h.alerts.Snapshot()
	c.JSON(http.StatusOK, ResponsesForAlert(snap.Responses, id))
}

// @Summary Add a response to an alert
// @Description Add a response. The first response on a pending alert moves it to in_progress. Requires an authenticated session.
// @Tags Responses
// @Accept json
// @Produce json
// @Param id path string true "Alert ID"
// @Param response body AddResponseRequest true "Response request"
// @Success 201 {object} ResponseItem
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 404 {object} map[string]string "Alert not found"
// @Router /alerts/{id}/responses [post]
func (h *Handler) addResponse(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "addResponse").WithField("id", id)

	var input AddResponseRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.alerts.AddResponse(c.Request.Context(), store.AddResponseInput{
		AlertID: id,
		Text:    input.Text,
	})
	if err != nil {
		log.WithError(err).Warn("Failed to add response in store")
		h.storeError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToResponseItem(response))
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// storeError переводит ошибки сторов в HTTP-статусы
func (h *Handler) storeError(c *gin.Context, log *logrus.Entry, err error) {
	switch {
	case errors.Is(err, store.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
	case errors.Is(err, store.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	case errors.Is(err, store.ErrAlertNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "alert not found"})
	case errors.Is(err, store.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "not allowed to resolve this alert"})
	case errors.Is(err, store.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "alert status cannot move backward"})
	default:
		log.WithError(err).Error("Unexpected store error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func filterAlerts(alerts []models.Alert, keep func(models.Alert) bool) []models.Alert {
	out := make([]models.Alert, 0, len(alerts))
	for _, a := range alerts {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}
