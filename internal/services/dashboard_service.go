package services

import (
	"fmt"
	"sort"
	"time"

	"portside_pos_backend/internal/models"
	"portside_pos_backend/internal/repositories"

	"github.com/shopspring/decimal"
)

const (
	recentOrdersLimit = 10
	noTopItemToday    = "None"
	recentOrderStatus = "Paid"
)

// DashboardService summarises today's trading against yesterday's.
type DashboardService interface {
	Summary() (*models.DashboardSummary, error)
}

type dashboardService struct {
	store       repositories.CollectionStore
	orderRepo   repositories.OrderRepository
	staffRepo   repositories.StaffRepository
	settingRepo repositories.SettingRepository
	loc         *time.Location
	now         func() time.Time
}

// NewDashboardService creates a new instance of DashboardService.
func NewDashboardService(
	store repositories.CollectionStore,
	or repositories.OrderRepository,
	sr repositories.StaffRepository,
	str repositories.SettingRepository,
	loc *time.Location,
) DashboardService {
	if loc == nil {
		loc = time.Local
	}
	return &dashboardService{store: store, orderRepo: or, staffRepo: sr, settingRepo: str, loc: loc, now: time.Now}
}

func (s *dashboardService) Summary() (*models.DashboardSummary, error) {
	history, err := s.orderRepo.ListHistory(s.store)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales history: %w", err)
	}
	staff, err := s.staffRepo.List(s.store)
	if err != nil {
		return nil, fmt.Errorf("failed to load staff: %w", err)
	}
	settings, err := s.settingRepo.GetSettings(s.store)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	summary := Summarize(history, len(staff), s.now().In(s.loc))
	summary.Currency = settings.Currency
	return &summary, nil
}

// Summarize buckets the history into today and yesterday relative to now,
// whose location decides where midnight falls.
func Summarize(history []models.Order, totalStaff int, now time.Time) models.DashboardSummary {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayStart := midnight.UnixMilli()
	yesterdayStart := midnight.Add(-24 * time.Hour).UnixMilli()

	var (
		today          []models.Order
		todaySales     = decimal.Zero
		yesterdaySales = decimal.Zero
		yesterdayCount int
	)
	for _, o := range history {
		switch {
		case o.Timestamp >= todayStart:
			today = append(today, o)
			todaySales = todaySales.Add(o.Total)
		case o.Timestamp >= yesterdayStart:
			yesterdayCount++
			yesterdaySales = yesterdaySales.Add(o.Total)
		}
	}

	top := topItem(today)
	if top.Name == "" {
		top.Name = noTopItemToday
	}

	return models.DashboardSummary{
		TodaySales:      todaySales,
		YesterdaySales:  yesterdaySales,
		SalesGrowth:     growth(todaySales, yesterdaySales),
		TodayOrders:     len(today),
		YesterdayOrders: yesterdayCount,
		OrdersGrowth:    growth(decimal.NewFromInt(int64(len(today))), decimal.NewFromInt(int64(yesterdayCount))),
		TotalStaff:      totalStaff,
		TopItem:         top,
		RecentOrders:    recentOrders(history, recentOrdersLimit),
	}
}

// growth is (today - yesterday) / yesterday * 100, or a no-data label when
// there is nothing to divide by.
func growth(today, yesterday decimal.Decimal) models.Growth {
	if yesterday.IsZero() {
		return models.Growth{Label: models.NoYesterdayData}
	}
	pct := today.Sub(yesterday).Div(yesterday).Mul(hundred)
	arrow := "▲"
	if pct.IsNegative() {
		arrow = "▼"
	}
	return models.Growth{
		Percent: &pct,
		Label:   fmt.Sprintf("%s %s%% vs yesterday", arrow, pct.Abs().Round(0).String()),
	}
}

// topItem counts lines by name; ties go to the name seen first.
func topItem(orders []models.Order) models.TopItem {
	counts := make(map[string]int)
	var order []string
	for _, o := range orders {
		for _, line := range o.Items {
			if _, seen := counts[line.Name]; !seen {
				order = append(order, line.Name)
			}
			counts[line.Name]++
		}
	}
	var top models.TopItem
	for _, name := range order {
		if counts[name] > top.Count {
			top = models.TopItem{Name: name, Count: counts[name]}
		}
	}
	return top
}

func recentOrders(history []models.Order, limit int) []models.RecentOrder {
	sorted := append([]models.Order{}, history...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp > sorted[j].Timestamp
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	rows := make([]models.RecentOrder, 0, len(sorted))
	for _, o := range sorted {
		rows = append(rows, models.RecentOrder{
			OrderID:      o.ID.String(),
			Timestamp:    o.Timestamp,
			Server:       o.Server,
			Total:        o.Total,
			TotalDisplay: models.Display(o.Total),
			Status:       recentOrderStatus,
		})
	}
	return rows
}
