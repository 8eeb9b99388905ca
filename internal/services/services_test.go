package services

import (
	"fmt"
	"testing"
	"time"

	"portside_pos_backend/internal/events"
	"portside_pos_backend/internal/models"
	"portside_pos_backend/internal/repositories"

	"github.com/shopspring/decimal"
)

var testNow = time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	store     *repositories.MemoryStore
	orders    repositories.OrderRepository
	menu      repositories.MenuRepository
	staff     repositories.StaffRepository
	inventory repositories.InventoryRepository
	settings  repositories.SettingRepository
	recorder  *events.Recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:     repositories.NewMemoryStore(),
		orders:    repositories.NewOrderRepository(),
		menu:      repositories.NewMenuRepository(),
		staff:     repositories.NewStaffRepository(),
		inventory: repositories.NewInventoryRepository(),
		settings:  repositories.NewSettingRepository(),
		recorder:  &events.Recorder{},
	}
	if err := Bootstrap(f.store); err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}
	return f
}

func (f *fixture) register() *registerService {
	svc := NewRegisterService(f.store, f.menu, f.orders, f.settings, f.recorder).(*registerService)
	svc.now = fixedNow
	n := 0
	svc.newRef = func() string {
		n++
		return fmt.Sprintf("ref-%d", n)
	}
	return svc
}

func (f *fixture) kitchen() *kitchenService {
	svc := NewKitchenService(f.store, f.orders, f.recorder).(*kitchenService)
	svc.now = fixedNow
	return svc
}

func (f *fixture) inventoryService() *inventoryService {
	svc := NewInventoryService(f.store, f.inventory, time.UTC).(*inventoryService)
	svc.now = fixedNow
	return svc
}

var server = models.Session{Name: "Jane Smith", Username: "jane", Role: models.RoleServer}
