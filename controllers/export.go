// controllers/export.go
package controllers

import (
	"net/http"
	"time"

	"salondesk-backend/services"
	"salondesk-backend/stores"
	"salondesk-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type ExportController struct {
	clients *stores.ClientStore
}

func NewExportController(clients *stores.ClientStore) *ExportController {
	return &ExportController{clients: clients}
}

// ExportClients streams the roster as a CSV or XLSX attachment.
func (ec *ExportController) ExportClients(c *gin.Context) {
	format := c.DefaultQuery("format", "xlsx")
	if format != "csv" && format != "xlsx" {
		utils.RespondWithError(c, http.StatusBadRequest, "Unsupported export format: "+format)
		return
	}

	clients, err := ec.clients.FindAll()
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve clients for export")
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve clients")
		return
	}

	now := time.Now()
	var payload *services.ExportData
	if format == "csv" {
		payload, err = services.ExportClientsCSV(clients, now)
	} else {
		payload, err = services.ExportClientsXLSX(clients, now)
	}
	if err != nil {
		log.Error().Err(err).Str("format", format).Msg("Export generation failed")
		utils.RespondWithError(c, http.StatusInternalServerError, "Export generation failed")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+payload.Filename+`"`)
	c.Data(http.StatusOK, payload.MIMEType, payload.Data)
}
