// controllers/reminder.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"salondesk-backend/models"
	"salondesk-backend/services"
	"salondesk-backend/stores"
	"salondesk-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type ReminderController struct {
	clients   *stores.ClientStore
	reminders *services.ReminderService
}

func NewReminderController(clients *stores.ClientStore, reminders *services.ReminderService) *ReminderController {
	return &ReminderController{clients: clients, reminders: reminders}
}

// SendRemindersInput selects clients and channels for a bulk run.
type SendRemindersInput struct {
	ClientIDs []string `json:"clientIds" binding:"required,min=1"`
	Channels  []string `json:"channels" binding:"required,min=1,dive,oneof=sms whatsapp email"`
}

// SendDueRemindersInput selects channels for a sweep over every due
// and overdue client.
type SendDueRemindersInput struct {
	Channels []string `json:"channels" binding:"required,min=1,dive,oneof=sms whatsapp email"`
}

// SendReminders runs a bulk dispatch over an explicit client list, in
// the order given. Unknown IDs fail the whole request before anything
// is sent.
func (rc *ReminderController) SendReminders(c *gin.Context) {
	var input SendRemindersInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	clients := make([]*models.Client, 0, len(input.ClientIDs))
	for _, raw := range input.ClientIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID: "+raw)
			return
		}
		client, err := rc.clients.FindByID(id)
		if err != nil {
			if errors.Is(err, stores.ErrClientNotFound) {
				utils.RespondWithError(c, http.StatusNotFound, "Client not found: "+raw)
			} else {
				log.Error().Err(err).Msg("Failed to load reminder clients")
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}
		clients = append(clients, client)
	}

	report := rc.reminders.RunBulk(c.Request.Context(), clients, input.Channels)
	c.JSON(http.StatusOK, report)
}

// SendDueReminders sweeps everyone due within the week plus everyone
// overdue. A roster fetch failure aborts before any send is attempted.
func (rc *ReminderController) SendDueReminders(c *gin.Context) {
	var input SendDueRemindersInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	candidates, err := services.DueAndOverdueClients(rc.clients, time.Now())
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch reminder candidates")
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch reminder candidates")
		return
	}

	report := rc.reminders.RunBulk(c.Request.Context(), candidates, input.Channels)
	c.JSON(http.StatusOK, report)
}
