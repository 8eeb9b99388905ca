package services

import (
	"errors"
	"testing"
	"time"

	"portside_pos_backend/internal/models"
	"portside_pos_backend/pkg/utils"
)

func newStaffService(f *fixture) *staffService {
	svc := NewStaffService(f.store, f.staff).(*staffService)
	svc.now = fixedNow
	return svc
}

func TestBootstrapHashesCredentials(t *testing.T) {
	f := newFixture(t)

	staff, _ := f.staff.List(f.store)
	for _, m := range staff {
		if m.Passcode != "" || m.PasscodeHash == "" {
			t.Errorf("staff %s not hashed: %+v", m.Username, m)
		}
	}
	admin, _ := f.settings.GetAdmin(f.store)
	if admin.Pass != "" || admin.PassHash == "" {
		t.Errorf("admin not hashed: %+v", admin)
	}

	// a second start must not rehash or reset anything
	if err := Bootstrap(f.store); err != nil {
		t.Fatal(err)
	}
	again, _ := f.settings.GetAdmin(f.store)
	if again.PassHash != admin.PassHash {
		t.Error("bootstrap rehashed admin password")
	}
}

func TestStaffCreateListDelete(t *testing.T) {
	f := newFixture(t)
	svc := newStaffService(f)

	created, err := svc.Create(CreateStaffRequest{Name: "Maria Cruz", Passcode: "4321", Role: models.RoleKitchen})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.Username != "maria" || created.Joined != testNow.UnixMilli() {
		t.Errorf("created = %+v", created)
	}

	if _, err := svc.Create(CreateStaffRequest{Name: "Maria B", Username: "maria", Passcode: "1", Role: models.RoleServer}); !errors.Is(err, ErrUsernameExists) {
		t.Errorf("duplicate username error = %v", err)
	}
	if _, err := svc.Create(CreateStaffRequest{Name: "Boss", Username: "Maria", Passcode: "1", Role: "Owner"}); !errors.Is(err, ErrInvalidRole) {
		t.Errorf("invalid role error = %v", err)
	}
	// usernames are case sensitive
	if _, err := svc.Create(CreateStaffRequest{Name: "Maria B", Username: "Maria", Passcode: "1", Role: models.RoleServer}); err != nil {
		t.Errorf("Create(Maria) error = %v", err)
	}

	found, _ := svc.List("mar")
	if len(found) != 2 {
		t.Errorf("List(mar) = %d, want 2", len(found))
	}

	if err := svc.Delete(created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := svc.Delete(created.ID); !errors.Is(err, ErrStaffNotFound) {
		t.Errorf("second delete error = %v", err)
	}
}

func TestLogin(t *testing.T) {
	utils.ConfigureJWT("test-secret", time.Hour)
	f := newFixture(t)
	staffSvc := newStaffService(f)
	auth := NewAuthService(f.store, f.staff, f.settings, staffSvc)

	tests := []struct {
		name     string
		creds    models.Credentials
		wantRole string
		landing  string
		wantErr  error
	}{
		{"admin any case", models.Credentials{Username: "ADMIN", Password: "admin123"}, models.RoleAdmin, "dashboard", nil},
		{"manager", models.Credentials{Username: "john", Password: "1234"}, models.RoleManager, "dashboard", nil},
		{"server", models.Credentials{Username: "jane", Password: "0000"}, models.RoleServer, "pos", nil},
		{"staff username is case sensitive", models.Credentials{Username: "Jane", Password: "0000"}, "", "", ErrInvalidCredentials},
		{"wrong passcode", models.Credentials{Username: "john", Password: "0000"}, "", "", ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := auth.Login(tt.creds)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Login() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Login() error = %v", err)
			}
			if got.User.Role != tt.wantRole || got.Landing != tt.landing {
				t.Errorf("Login() = %+v", got)
			}
			claims, err := utils.ValidateToken(got.AccessToken)
			if err != nil || claims.Role != tt.wantRole {
				t.Errorf("token claims = %+v, %v", claims, err)
			}
		})
	}
}

func TestRegisterAndChangeAdmin(t *testing.T) {
	utils.ConfigureJWT("test-secret", time.Hour)
	f := newFixture(t)
	auth := NewAuthService(f.store, f.staff, f.settings, newStaffService(f))

	if _, err := auth.Register(CreateStaffRequest{Name: "Chef Ko", Passcode: "9", Role: models.RoleKitchen}); !errors.Is(err, ErrValidation) {
		t.Errorf("register without username error = %v", err)
	}
	if _, err := auth.Register(CreateStaffRequest{Name: "Chef Ko", Username: "ko", Passcode: "9", Role: models.RoleKitchen}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	got, err := auth.Login(models.Credentials{Username: "ko", Password: "9"})
	if err != nil || got.Landing != "kitchen" {
		t.Fatalf("Login(ko) = %+v, %v", got, err)
	}

	if err := auth.ChangeAdminCredentials(AdminCredentialsRequest{Username: "boss", Password: "s3cret"}); err != nil {
		t.Fatalf("ChangeAdminCredentials() error = %v", err)
	}
	if _, err := auth.Login(models.Credentials{Username: "admin", Password: "admin123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("old admin login error = %v", err)
	}
	if _, err := auth.Login(models.Credentials{Username: "Boss", Password: "s3cret"}); err != nil {
		t.Errorf("new admin login error = %v", err)
	}
}

func TestMenuEditor(t *testing.T) {
	f := newFixture(t)
	svc := NewMenuService(f.store, f.menu).(*menuService)
	svc.now = fixedNow

	name, err := svc.AddCategory("  Desserts ")
	if err != nil || name != "desserts" {
		t.Fatalf("AddCategory() = %q, %v", name, err)
	}
	if _, err := svc.AddCategory("DESSERTS"); !errors.Is(err, ErrCategoryExists) {
		t.Errorf("duplicate category error = %v", err)
	}

	cake, err := svc.CreateItem(MenuItemRequest{Name: "Cake", Price: dec("4.5"), Category: "desserts"})
	if err != nil {
		t.Fatalf("CreateItem() error = %v", err)
	}
	if _, err := svc.CreateItem(MenuItemRequest{Name: "Pie", Price: dec("1"), Category: "nope"}); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("unknown category error = %v", err)
	}

	moved, err := svc.UpdateItem(cake.ID, MenuItemRequest{Name: "Cheesecake", Price: dec("5"), Category: "drinks"})
	if err != nil {
		t.Fatalf("UpdateItem() error = %v", err)
	}
	if moved.ID != cake.ID || moved.Category != "drinks" {
		t.Errorf("moved = %+v", moved)
	}
	desserts, _ := svc.Items("", "desserts")
	if len(desserts) != 0 {
		t.Errorf("item left in old category: %+v", desserts)
	}
	found, _ := svc.Items("cheese", "all")
	if len(found) != 1 || found[0].Category != "drinks" {
		t.Errorf("search = %+v", found)
	}

	if err := svc.DeleteItem("drinks", cake.ID); err != nil {
		t.Fatalf("DeleteItem() error = %v", err)
	}
	if err := svc.DeleteItem("drinks", cake.ID); !errors.Is(err, ErrMenuItemNotFound) {
		t.Errorf("second delete error = %v", err)
	}

	categories, _ := svc.Categories()
	if len(categories) != 4 || categories[3] != "desserts" {
		t.Errorf("categories = %v", categories)
	}
}

func TestMenuCategoryNamesIgnoreCase(t *testing.T) {
	f := newFixture(t)
	svc := NewMenuService(f.store, f.menu).(*menuService)
	svc.now = fixedNow

	if _, err := svc.AddCategory("Desserts"); err != nil {
		t.Fatalf("AddCategory() error = %v", err)
	}
	cake, err := svc.CreateItem(MenuItemRequest{Name: "Cake", Price: dec("4.5"), Category: " Desserts"})
	if err != nil {
		t.Fatalf("CreateItem() error = %v", err)
	}
	if cake.Category != "desserts" {
		t.Errorf("Category = %q, want desserts", cake.Category)
	}
	if items, _ := svc.Items("", "DESSERTS"); len(items) != 1 {
		t.Errorf("Items(DESSERTS) = %+v", items)
	}
	if items, _ := svc.Items("", "All"); len(items) == 0 {
		t.Error("Items(All) should not filter")
	}
	if err := svc.DeleteItem("Desserts", cake.ID); err != nil {
		t.Errorf("DeleteItem() error = %v", err)
	}
}

func TestSettings(t *testing.T) {
	f := newFixture(t)
	svc := NewSettingService(f.store, f.settings)

	if _, err := svc.Update(UpdateSettingsRequest{Tax: dec("-1"), Currency: "$"}); !errors.Is(err, ErrValidation) {
		t.Errorf("negative tax error = %v", err)
	}
	if _, err := svc.Update(UpdateSettingsRequest{Tax: dec("12"), Currency: "$"}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	reg := f.register()
	reg.AddLine(server, 21)
	view, _ := reg.Cart(server)
	if view.Display.Tax != "0.42" || view.Currency != "$" {
		t.Errorf("cart after settings change = %+v", view.Display)
	}
}
