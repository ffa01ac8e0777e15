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

type ClientController struct {
	clients *stores.ClientStore
}

func NewClientController(clients *stores.ClientStore) *ClientController {
	return &ClientController{clients: clients}
}

// CreateClientInput defines the expected JSON structure for creating a client
type CreateClientInput struct {
	Name          string     `json:"name" binding:"required"`
	Mobile        string     `json:"mobile" binding:"required"`
	Email         string     `json:"email" binding:"required"`
	ServicesTaken []string   `json:"servicesTaken"`
	LastVisit     *time.Time `json:"lastVisit"`
	Notes         string     `json:"notes"`
}

// UpdateClientInput defines the expected JSON structure for updating a client
type UpdateClientInput struct {
	Name          *string    `json:"name"`
	Mobile        *string    `json:"mobile"`
	Email         *string    `json:"email"`
	ServicesTaken *[]string  `json:"servicesTaken"`
	LastVisit     *time.Time `json:"lastVisit"`
	Notes         *string    `json:"notes"`
}

// AppointmentInput defines one history entry to append.
type AppointmentInput struct {
	Date    time.Time `json:"date" binding:"required"`
	Service string    `json:"service" binding:"required"`
	Price   *float64  `json:"price"`
	Notes   string    `json:"notes"`
	Status  string    `json:"status" binding:"omitempty,oneof=scheduled completed cancelled no-show"`
}

// clientView decorates a record with its derived status for listings.
type clientView struct {
	*models.Client
	Status       services.Status `json:"status"`
	DaysUntilDue int             `json:"daysUntilDue"`
}

func viewOf(client *models.Client, now time.Time) clientView {
	status, days := services.Classify(client.NextDueDate, now)
	return clientView{Client: client, Status: status, DaysUntilDue: days}
}

func viewsOf(clients []*models.Client, now time.Time) []clientView {
	views := make([]clientView, 0, len(clients))
	for _, client := range clients {
		views = append(views, viewOf(client, now))
	}
	return views
}

// CreateClient adds a client to the roster.
func (cc *ClientController) CreateClient(c *gin.Context) {
	var input CreateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	client := models.Client{
		ID:            uuid.New(),
		Name:          input.Name,
		Mobile:        input.Mobile,
		Email:         input.Email,
		ServicesTaken: models.StringList(input.ServicesTaken),
		Notes:         input.Notes,
	}
	if input.LastVisit != nil {
		client.LastVisit = *input.LastVisit
	}

	if err := cc.clients.Create(&client); err != nil {
		respondStoreError(c, err, "Failed to create client")
		return
	}

	c.JSON(http.StatusCreated, viewOf(&client, time.Now()))
}

// GetClients lists the full roster with derived statuses.
func (cc *ClientController) GetClients(c *gin.Context) {
	clients, err := cc.clients.FindAll()
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve clients")
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve clients")
		return
	}
	c.JSON(http.StatusOK, viewsOf(clients, time.Now()))
}

// GetClient retrieves a specific client by ID.
func (cc *ClientController) GetClient(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	client, err := cc.clients.FindByID(id)
	if err != nil {
		respondStoreError(c, err, "Database error")
		return
	}

	c.JSON(http.StatusOK, viewOf(client, time.Now()))
}

// UpdateClient updates an existing client.
func (cc *ClientController) UpdateClient(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var input UpdateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	client, err := cc.clients.FindByID(id)
	if err != nil {
		respondStoreError(c, err, "Database error")
		return
	}

	if input.Name != nil {
		client.Name = *input.Name
	}
	if input.Mobile != nil {
		client.Mobile = *input.Mobile
	}
	if input.Email != nil {
		client.Email = *input.Email
	}
	if input.ServicesTaken != nil {
		client.ServicesTaken = models.StringList(*input.ServicesTaken)
	}
	if input.LastVisit != nil {
		client.LastVisit = *input.LastVisit
	}
	if input.Notes != nil {
		client.Notes = *input.Notes
	}

	if err := cc.clients.Update(client); err != nil {
		respondStoreError(c, err, "Failed to update client")
		return
	}

	c.JSON(http.StatusOK, viewOf(client, time.Now()))
}

// DeleteClient removes a client permanently.
func (cc *ClientController) DeleteClient(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := cc.clients.Delete(id); err != nil {
		respondStoreError(c, err, "Failed to delete client")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}

// AddAppointment appends a history entry and rolls the due date.
func (cc *ClientController) AddAppointment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var input AppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	appt := models.Appointment{
		Date:    input.Date,
		Service: input.Service,
		Price:   input.Price,
		Notes:   input.Notes,
		Status:  input.Status,
	}

	client, err := cc.clients.AddAppointment(id, &appt)
	if err != nil {
		respondStoreError(c, err, "Failed to add appointment")
		return
	}

	c.JSON(http.StatusCreated, viewOf(client, time.Now()))
}

// GetDueClients lists clients due within the next week.
func (cc *ClientController) GetDueClients(c *gin.Context) {
	now := time.Now()
	end := utils.EndOfDay(now.AddDate(0, 0, services.DueSoonWindowDays))
	clients, err := cc.clients.FindByDueWindow(now, end)
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve due clients")
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve due clients")
		return
	}
	c.JSON(http.StatusOK, viewsOf(clients, now))
}

// GetOverdueClients lists clients whose due date has passed.
func (cc *ClientController) GetOverdueClients(c *gin.Context) {
	now := time.Now()
	clients, err := cc.clients.FindOverdue(now)
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve overdue clients")
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve overdue clients")
		return
	}
	c.JSON(http.StatusOK, viewsOf(clients, now))
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return uuid.Nil, false
	}
	return id, true
}

func respondStoreError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, stores.ErrClientNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Client not found")
	case errors.Is(err, stores.ErrMobileExists):
		utils.RespondWithError(c, http.StatusConflict, "Client with this mobile number already exists")
	case errors.Is(err, models.ErrClientValidation):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Msg(fallback)
		utils.RespondWithError(c, http.StatusInternalServerError, fallback)
	}
}
