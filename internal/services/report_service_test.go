package services

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"portside_pos_backend/internal/models"

	"github.com/xuri/excelize/v2"
)

func TestBuildDailyReport(t *testing.T) {
	day := testNow.Format("2006-01-02")
	history := []models.Order{
		sale("101", testNow.Add(-3*time.Hour), "20", "Burger", "Coke"),
		sale("102", testNow.Add(-time.Hour), "15", "Coke"),
		sale("90", testNow.Add(-48*time.Hour), "100", "Steak"),
	}
	expenses := []models.ExpenseRecord{
		{ID: 1, Cost: dec("50"), Date: testNow.Add(-time.Hour).UTC().Format(expenseDateLayout)},
		{ID: 2, Cost: dec("5"), Date: testNow.Add(-48 * time.Hour).UTC().Format(expenseDateLayout)},
		{ID: 3, Cost: dec("1"), Date: "garbage"},
	}

	got := BuildDailyReport(day, history, expenses, time.UTC)
	if !got.Revenue.Equal(dec("35")) || !got.Expenses.Equal(dec("50")) {
		t.Fatalf("revenue=%s expenses=%s", got.Revenue, got.Expenses)
	}
	if !got.NetProfit.Equal(dec("-15")) {
		t.Errorf("net profit = %s, want -15", got.NetProfit)
	}
	if !got.LifetimeProfit.Equal(dec("79")) {
		t.Errorf("lifetime profit = %s, want 79", got.LifetimeProfit)
	}
	if got.TopItem.Name != "Coke" || got.TopItem.Count != 2 {
		t.Errorf("top item = %+v", got.TopItem)
	}
	if len(got.Sales) != 2 || got.Sales[0].OrderID != "102" || got.Sales[1].Items != "Burger, Coke" {
		t.Errorf("sales = %+v", got.Sales)
	}
}

func TestBuildDailyReportTopItemTieGoesToFirstSeen(t *testing.T) {
	history := []models.Order{
		sale("101", testNow.Add(-2*time.Hour), "10", "Fries", "Coke"),
		sale("102", testNow.Add(-time.Hour), "10", "Coke", "Fries"),
	}
	got := BuildDailyReport(testNow.Format("2006-01-02"), history, nil, time.UTC)
	if got.TopItem != (models.TopItem{Name: "Fries", Count: 2}) {
		t.Errorf("top item = %+v, want Fries x2", got.TopItem)
	}
}

func TestBuildDailyReportEmptyDay(t *testing.T) {
	got := BuildDailyReport("2020-01-01", nil, nil, time.UTC)
	if got.TopItem.Name != "-" || !got.NetProfit.IsZero() || len(got.Sales) != 0 {
		t.Errorf("report = %+v", got)
	}
}

func newReportService(f *fixture) *reportService {
	svc := NewReportService(f.store, f.orders, f.inventory, f.settings, time.UTC).(*reportService)
	svc.now = fixedNow
	return svc
}

func TestDailyReportDateValidation(t *testing.T) {
	svc := newReportService(newFixture(t))

	if _, err := svc.Daily("05/03/2024"); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("Daily() error = %v, want ErrInvalidDate", err)
	}
	report, err := svc.Daily("")
	if err != nil {
		t.Fatalf("Daily() error = %v", err)
	}
	if report.Date != "2024-03-05" || report.Currency != "₱" {
		t.Errorf("report = %+v", report)
	}
}

func TestExportDaily(t *testing.T) {
	f := newFixture(t)
	if err := f.orders.AppendHistory(f.store, sale("101", testNow, "7.7", "Coke", "Coke")); err != nil {
		t.Fatal(err)
	}
	svc := newReportService(f)

	data, name, err := svc.ExportDaily("2024-03-05")
	if err != nil {
		t.Fatalf("ExportDaily() error = %v", err)
	}
	if name != "daily-report-2024-03-05.xlsx" {
		t.Errorf("file name = %q", name)
	}

	book, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer book.Close()

	revenue, _ := book.GetCellValue(reportSheet, "B2")
	if revenue != "7.70" {
		t.Errorf("revenue cell = %q", revenue)
	}
	order, _ := book.GetCellValue(reportSheet, "A10")
	items, _ := book.GetCellValue(reportSheet, "C10")
	if order != "101" || items != "Coke, Coke" {
		t.Errorf("first sale row = %q %q", order, items)
	}
}
