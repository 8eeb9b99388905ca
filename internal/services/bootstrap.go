package services

import (
	"fmt"

	"portside_pos_backend/internal/repositories"
	"portside_pos_backend/pkg/utils"
)

// Bootstrap writes the default collections on first start and hashes any
// plaintext credentials left by older clients.
func Bootstrap(store repositories.CollectionStore) error {
	menuRepo := repositories.NewMenuRepository()
	staffRepo := repositories.NewStaffRepository()
	inventoryRepo := repositories.NewInventoryRepository()
	settingRepo := repositories.NewSettingRepository()

	return store.Atomically(func(tx repositories.CollectionStore) error {
		catalog, err := menuRepo.GetCatalog(tx)
		if err != nil {
			return err
		}
		if err := menuRepo.SaveCatalog(tx, catalog); err != nil {
			return err
		}

		items, err := inventoryRepo.ListItems(tx)
		if err != nil {
			return err
		}
		if err := inventoryRepo.SaveItems(tx, items); err != nil {
			return err
		}

		staff, err := staffRepo.List(tx)
		if err != nil {
			return err
		}
		hashed := 0
		for i := range staff {
			if staff[i].Passcode == "" {
				continue
			}
			if staff[i].PasscodeHash == "" {
				if staff[i].PasscodeHash, err = HashSecret(staff[i].Passcode); err != nil {
					return err
				}
			}
			staff[i].Passcode = ""
			hashed++
		}
		if err := staffRepo.Save(tx, staff); err != nil {
			return err
		}

		admin, err := settingRepo.GetAdmin(tx)
		if err != nil {
			return err
		}
		if admin.Pass != "" {
			if admin.PassHash == "" {
				if admin.PassHash, err = HashSecret(admin.Pass); err != nil {
					return err
				}
			}
			admin.Pass = ""
			hashed++
		}
		if err := settingRepo.SaveAdmin(tx, admin); err != nil {
			return err
		}

		settings, err := settingRepo.GetSettings(tx)
		if err != nil {
			return err
		}
		if err := settingRepo.SaveSettings(tx, settings); err != nil {
			return fmt.Errorf("failed to seed settings: %w", err)
		}

		utils.LogInfo("Collections ready", map[string]interface{}{"credentials_hashed": hashed})
		return nil
	})
}
