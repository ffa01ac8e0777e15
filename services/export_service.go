// services/export_service.go
package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strings"
	"time"

	"salondesk-backend/models"

	"github.com/xuri/excelize/v2"
)

// ExportData is a ready-to-download payload.
type ExportData struct {
	Filename string
	MIMEType string
	Data     []byte
}

const (
	mimeCSV  = "text/csv"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var exportHeaders = []string{
	"Client Name",
	"Mobile Number",
	"Email",
	"Services Taken",
	"Last Visit",
	"Next Due Date",
	"Days Until Due",
	"Status",
	"Total Appointments",
	"Notes",
	"Created Date",
}

// ClientExportRow flattens one client into the export row shape. The
// status and day count come from the classifier at the given instant.
func ClientExportRow(client *models.Client, now time.Time) []string {
	status, daysUntil := Classify(client.NextDueDate, now)
	return []string{
		client.Name,
		client.Mobile,
		client.Email,
		strings.Join(client.ServicesTaken, ", "),
		client.LastVisit.Format("2006-01-02"),
		client.NextDueDate.Format("2006-01-02"),
		fmt.Sprintf("%d", daysUntil),
		string(status),
		fmt.Sprintf("%d", len(client.Appointments)),
		client.Notes,
		client.CreatedAt.Format("2006-01-02"),
	}
}

// ExportClientsCSV renders the roster as a CSV attachment.
func ExportClientsCSV(clients []*models.Client, now time.Time) (*ExportData, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeaders); err != nil {
		return nil, err
	}
	for _, client := range clients {
		if err := w.Write(ClientExportRow(client, now)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return &ExportData{
		Filename: fmt.Sprintf("salon-clients-%s.csv", now.Format("2006-01-02")),
		MIMEType: mimeCSV,
		Data:     buf.Bytes(),
	}, nil
}

// ExportClientsXLSX renders the roster as an Excel workbook with a
// Clients sheet plus Summary and Service Analysis sheets.
func ExportClientsXLSX(clients []*models.Client, now time.Time) (*ExportData, error) {
	f := excelize.NewFile()
	defer f.Close()

	const clientsSheet = "Clients"
	if err := f.SetSheetName("Sheet1", clientsSheet); err != nil {
		return nil, err
	}

	if err := writeRow(f, clientsSheet, 1, exportHeaders); err != nil {
		return nil, err
	}
	for i, client := range clients {
		if err := writeRow(f, clientsSheet, i+2, ClientExportRow(client, now)); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(clientsSheet, "A", "K", 22); err != nil {
		return nil, err
	}

	if err := writeSummarySheet(f, clients, now); err != nil {
		return nil, err
	}
	if err := writeServiceAnalysisSheet(f, clients); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}

	return &ExportData{
		Filename: fmt.Sprintf("salon-clients-report-%s.xlsx", now.Format("2006-01-02")),
		MIMEType: mimeXLSX,
		Data:     buf.Bytes(),
	}, nil
}

func writeSummarySheet(f *excelize.File, clients []*models.Client, now time.Time) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	var active, overdue, dueThisWeek int
	for _, client := range clients {
		status, _ := Classify(client.NextDueDate, now)
		switch status {
		case StatusOverdue:
			overdue++
		case StatusDueSoon:
			dueThisWeek++
			active++
		default:
			active++
		}
	}

	rows := [][]interface{}{
		{"Total Clients", len(clients)},
		{"Active Clients", active},
		{"Overdue Clients", overdue},
		{"Due This Week", dueThisWeek},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeServiceAnalysisSheet(f *excelize.File, clients []*models.Client) error {
	const sheet = "Service Analysis"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	counts := map[string]int{}
	for _, client := range clients {
		for _, service := range client.ServicesTaken {
			counts[service]++
		}
	}

	type stat struct {
		service string
		count   int
	}
	stats := make([]stat, 0, len(counts))
	for service, count := range counts {
		stats = append(stats, stat{service, count})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].count != stats[j].count {
			return stats[i].count > stats[j].count
		}
		return stats[i].service < stats[j].service
	})

	if err := writeRow(f, sheet, 1, []string{"Service", "Client Count", "Percentage"}); err != nil {
		return err
	}
	for i, s := range stats {
		pct := fmt.Sprintf("%.1f%%", float64(s.count)/float64(len(clients))*100)
		if err := writeRow(f, sheet, i+2, []string{s.service, fmt.Sprintf("%d", s.count), pct}); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	converted := make([]interface{}, len(values))
	for i, v := range values {
		converted[i] = v
	}
	return f.SetSheetRow(sheet, cell, &converted)
}
