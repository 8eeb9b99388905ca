package services

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"portside_pos_backend/internal/models"
	"portside_pos_backend/internal/repositories"
	"portside_pos_backend/pkg/utils"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	reportDateLayout = "2006-01-02"
	noTopItemReport  = "-"
	reportSheet      = "Daily Report"
)

// ReportService builds the end of day report.
type ReportService interface {
	// Daily returns the report for date (YYYY-MM-DD); empty means today.
	Daily(date string) (*models.DailyReport, error)
	// ExportDaily renders the same report as an XLSX workbook.
	ExportDaily(date string) ([]byte, string, error)
}

type reportService struct {
	store         repositories.CollectionStore
	orderRepo     repositories.OrderRepository
	inventoryRepo repositories.InventoryRepository
	settingRepo   repositories.SettingRepository
	loc           *time.Location
	now           func() time.Time
}

// NewReportService creates a new instance of ReportService.
func NewReportService(
	store repositories.CollectionStore,
	or repositories.OrderRepository,
	ir repositories.InventoryRepository,
	sr repositories.SettingRepository,
	loc *time.Location,
) ReportService {
	if loc == nil {
		loc = time.Local
	}
	return &reportService{store: store, orderRepo: or, inventoryRepo: ir, settingRepo: sr, loc: loc, now: time.Now}
}

func (s *reportService) resolveDate(date string) (string, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return s.now().In(s.loc).Format(reportDateLayout), nil
	}
	if _, err := time.ParseInLocation(reportDateLayout, date, s.loc); err != nil {
		return "", ErrInvalidDate
	}
	return date, nil
}

func (s *reportService) Daily(date string) (*models.DailyReport, error) {
	day, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}
	history, err := s.orderRepo.ListHistory(s.store)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales history: %w", err)
	}
	expenses, err := s.inventoryRepo.ListExpenses(s.store)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}
	settings, err := s.settingRepo.GetSettings(s.store)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	report := BuildDailyReport(day, history, expenses, s.loc)
	report.Currency = settings.Currency
	return &report, nil
}

// BuildDailyReport filters sales and expenses down to one local calendar date.
// Lifetime profit runs over every record.
func BuildDailyReport(day string, history []models.Order, expenses []models.ExpenseRecord, loc *time.Location) models.DailyReport {
	var (
		daySales       []models.Order
		revenue        = decimal.Zero
		lifetimeIncome = decimal.Zero
	)
	for _, o := range history {
		lifetimeIncome = lifetimeIncome.Add(o.Total)
		if time.UnixMilli(o.Timestamp).In(loc).Format(reportDateLayout) == day {
			daySales = append(daySales, o)
			revenue = revenue.Add(o.Total)
		}
	}

	dayExpenses := decimal.Zero
	lifetimeExpenses := decimal.Zero
	for _, e := range expenses {
		lifetimeExpenses = lifetimeExpenses.Add(e.Cost)
		if expenseDate(e, loc) == day {
			dayExpenses = dayExpenses.Add(e.Cost)
		}
	}

	top := topItem(daySales)
	if top.Name == "" {
		top.Name = noTopItemReport
	}

	sort.SliceStable(daySales, func(i, j int) bool {
		return daySales[i].Timestamp > daySales[j].Timestamp
	})
	rows := make([]models.SalesRow, 0, len(daySales))
	for _, o := range daySales {
		names := make([]string, 0, len(o.Items))
		for _, line := range o.Items {
			names = append(names, line.Name)
		}
		rows = append(rows, models.SalesRow{
			OrderID:      o.ID.String(),
			Timestamp:    o.Timestamp,
			Items:        strings.Join(names, ", "),
			Total:        o.Total,
			TotalDisplay: models.Display(o.Total),
		})
	}

	return models.DailyReport{
		Date:           day,
		Revenue:        revenue,
		Expenses:       dayExpenses,
		NetProfit:      revenue.Sub(dayExpenses),
		LifetimeProfit: lifetimeIncome.Sub(lifetimeExpenses),
		TopItem:        top,
		Sales:          rows,
	}
}

// expenseDate is the local calendar date of an expense, or "" when the
// stored date cannot be parsed.
func expenseDate(e models.ExpenseRecord, loc *time.Location) string {
	t, err := time.Parse(time.RFC3339Nano, e.Date)
	if err != nil {
		utils.LogDebug("Skipping expense with unreadable date", map[string]interface{}{"expense_id": e.ID, "date": e.Date})
		return ""
	}
	return t.In(loc).Format(reportDateLayout)
}

func (s *reportService) ExportDaily(date string) ([]byte, string, error) {
	report, err := s.Daily(date)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			utils.LogError(err, "Failed to close report workbook")
		}
	}()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return nil, "", fmt.Errorf("failed to prepare report sheet: %w", err)
	}

	summary := [][]interface{}{
		{"Date", report.Date},
		{"Revenue", models.Display(report.Revenue)},
		{"Expenses", models.Display(report.Expenses)},
		{"Net Profit", models.Display(report.NetProfit)},
		{"Lifetime Profit", models.Display(report.LifetimeProfit)},
		{"Top Item", report.TopItem.Name},
		{"Currency", report.Currency},
		{},
		{"Order", "Time", "Items", "Total"},
	}
	row := 1
	for _, values := range summary {
		if err := setRow(f, row, values); err != nil {
			return nil, "", err
		}
		row++
	}
	for _, sale := range report.Sales {
		at := time.UnixMilli(sale.Timestamp).In(s.loc).Format("15:04")
		if err := setRow(f, row, []interface{}{sale.OrderID, at, sale.Items, models.Display(sale.Total)}); err != nil {
			return nil, "", err
		}
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to write report workbook: %w", err)
	}
	return bytes.Clone(buf.Bytes()), fmt.Sprintf("daily-report-%s.xlsx", report.Date), nil
}

func setRow(f *excelize.File, row int, values []interface{}) error {
	if len(values) == 0 {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(reportSheet, cell, &values)
}
