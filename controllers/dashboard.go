// controllers/dashboard.go
package controllers

import (
	"net/http"
	"sort"
	"time"

	"salondesk-backend/services"
	"salondesk-backend/stores"
	"salondesk-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type DashboardController struct {
	clients *stores.ClientStore
}

func NewDashboardController(clients *stores.ClientStore) *DashboardController {
	return &DashboardController{clients: clients}
}

type serviceCount struct {
	Service string `json:"service"`
	Count   int    `json:"count"`
}

// GetDashboardOverview aggregates roster stats for the landing page.
func (dc *DashboardController) GetDashboardOverview(c *gin.Context) {
	clients, err := dc.clients.FindAll()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load dashboard stats")
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load dashboard stats")
		return
	}

	now := time.Now()
	var upcoming, overdue int
	serviceCounts := map[string]int{}
	for _, client := range clients {
		status, _ := services.Classify(client.NextDueDate, now)
		switch status {
		case services.StatusDueSoon:
			upcoming++
		case services.StatusOverdue:
			overdue++
		}
		for _, service := range client.ServicesTaken {
			serviceCounts[service]++
		}
	}

	popular := make([]serviceCount, 0, len(serviceCounts))
	for service, count := range serviceCounts {
		popular = append(popular, serviceCount{Service: service, Count: count})
	}
	sort.Slice(popular, func(i, j int) bool {
		if popular[i].Count != popular[j].Count {
			return popular[i].Count > popular[j].Count
		}
		return popular[i].Service < popular[j].Service
	})
	if len(popular) > 5 {
		popular = popular[:5]
	}

	c.JSON(http.StatusOK, gin.H{
		"totalClients":         len(clients),
		"upcomingAppointments": upcoming,
		"overdueClients":       overdue,
		"popularServices":      popular,
	})
}
