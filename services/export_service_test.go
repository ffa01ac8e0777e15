package services

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"salondesk-backend/models"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

func exportClient() *models.Client {
	lastVisit := testNow.AddDate(0, 0, -10)
	return &models.Client{
		ID:            uuid.New(),
		Name:          "Rhea Kapoor",
		Mobile:        "+919876543210",
		Email:         "rhea@example.com",
		ServicesTaken: models.StringList{"Haircut", "Color"},
		LastVisit:     lastVisit,
		NextDueDate:   lastVisit.Add(models.DueDateInterval),
		Appointments: []models.Appointment{
			{Date: lastVisit.AddDate(0, 0, -60), Service: "Haircut", Status: models.AppointmentCompleted},
			{Date: lastVisit.AddDate(0, 0, -30), Service: "Color", Status: models.AppointmentCompleted},
			{Date: lastVisit, Service: "Haircut", Status: models.AppointmentCompleted},
		},
	}
}

func TestClientExportRowShape(t *testing.T) {
	client := exportClient()
	row := ClientExportRow(client, testNow)

	if len(row) != len(exportHeaders) {
		t.Fatalf("row has %d fields, want %d", len(row), len(exportHeaders))
	}

	fields := map[string]string{}
	for i, h := range exportHeaders {
		fields[h] = row[i]
	}

	if fields["Total Appointments"] != "3" {
		t.Errorf("Total Appointments = %q, want \"3\"", fields["Total Appointments"])
	}
	if fields["Services Taken"] != "Haircut, Color" {
		t.Errorf("Services Taken = %q, want comma-joined pair", fields["Services Taken"])
	}
	// Due in 20 days: outside the week window.
	if fields["Status"] != string(StatusActive) {
		t.Errorf("Status = %q, want %q", fields["Status"], StatusActive)
	}
	if fields["Days Until Due"] != "20" {
		t.Errorf("Days Until Due = %q, want \"20\"", fields["Days Until Due"])
	}
}

func TestExportClientsCSV(t *testing.T) {
	payload, err := ExportClientsCSV([]*models.Client{exportClient()}, testNow)
	if err != nil {
		t.Fatalf("ExportClientsCSV() error = %v", err)
	}

	if payload.MIMEType != "text/csv" {
		t.Errorf("MIMEType = %q, want text/csv", payload.MIMEType)
	}
	wantName := "salon-clients-" + testNow.Format("2006-01-02") + ".csv"
	if payload.Filename != wantName {
		t.Errorf("Filename = %q, want %q", payload.Filename, wantName)
	}

	records, err := csv.NewReader(bytes.NewReader(payload.Data)).ReadAll()
	if err != nil {
		t.Fatalf("parsing produced CSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("CSV rows = %d, want header + one client", len(records))
	}
	if records[0][0] != "Client Name" {
		t.Errorf("header[0] = %q, want \"Client Name\"", records[0][0])
	}
	if records[1][0] != "Rhea Kapoor" {
		t.Errorf("row[0] = %q, want client name", records[1][0])
	}
}

func TestExportClientsXLSX(t *testing.T) {
	overdueVisit := testNow.AddDate(0, 0, -40)
	overdue := &models.Client{
		ID:            uuid.New(),
		Name:          "Late Client",
		Mobile:        "+15550001111",
		Email:         "late@example.com",
		ServicesTaken: models.StringList{"Haircut"},
		LastVisit:     overdueVisit,
		NextDueDate:   overdueVisit.Add(models.DueDateInterval),
	}

	payload, err := ExportClientsXLSX([]*models.Client{exportClient(), overdue}, testNow)
	if err != nil {
		t.Fatalf("ExportClientsXLSX() error = %v", err)
	}

	if !strings.HasSuffix(payload.Filename, ".xlsx") {
		t.Errorf("Filename = %q, want .xlsx suffix", payload.Filename)
	}

	f, err := excelize.OpenReader(bytes.NewReader(payload.Data))
	if err != nil {
		t.Fatalf("opening produced workbook: %v", err)
	}
	defer f.Close()

	for _, sheet := range []string{"Clients", "Summary", "Service Analysis"} {
		if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
			t.Errorf("workbook missing sheet %q", sheet)
		}
	}

	name, err := f.GetCellValue("Clients", "A2")
	if err != nil {
		t.Fatalf("reading A2: %v", err)
	}
	if name != "Rhea Kapoor" {
		t.Errorf("Clients!A2 = %q, want first client name", name)
	}

	total, err := f.GetCellValue("Summary", "B1")
	if err != nil {
		t.Fatalf("reading Summary!B1: %v", err)
	}
	if total != "2" {
		t.Errorf("Summary total clients = %q, want \"2\"", total)
	}

	overdueCount, err := f.GetCellValue("Summary", "B3")
	if err != nil {
		t.Fatalf("reading Summary!B3: %v", err)
	}
	if overdueCount != "1" {
		t.Errorf("Summary overdue clients = %q, want \"1\"", overdueCount)
	}
}
