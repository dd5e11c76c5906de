package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopnext/internal/models"
	"github.com/shopnext/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAddressServiceTest(t *testing.T) (*AddressService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:address_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Address{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewAddressService(repository.NewAddressRepository(db)), db
}

func addressInputFixture(name string) AddressInput {
	return AddressInput{
		FullName:   name,
		Phone:      "9876543210",
		Line1:      "12 MG Road",
		City:       "Bengaluru",
		State:      "Karnataka",
		PostalCode: "560001",
	}
}

func defaultAddressIDs(t *testing.T, db *gorm.DB, userID uint) []uint {
	t.Helper()
	var addresses []models.Address
	if err := db.Where("user_id = ? AND is_default = ?", userID, true).Find(&addresses).Error; err != nil {
		t.Fatalf("load default addresses failed: %v", err)
	}
	ids := make([]uint, 0, len(addresses))
	for _, a := range addresses {
		ids = append(ids, a.ID)
	}
	return ids
}

func TestAddressFirstBecomesDefault(t *testing.T) {
	svc, db := setupAddressServiceTest(t)

	first, err := svc.Create(7, addressInputFixture("Asha"))
	if err != nil {
		t.Fatalf("create first failed: %v", err)
	}
	if !first.IsDefault {
		t.Fatal("first address should become default")
	}
	if first.Country != "India" {
		t.Fatalf("empty country should fall back, got %q", first.Country)
	}

	second, err := svc.Create(7, addressInputFixture("Ravi"))
	if err != nil {
		t.Fatalf("create second failed: %v", err)
	}
	if second.IsDefault {
		t.Fatal("second address should not steal default")
	}
	if ids := defaultAddressIDs(t, db, 7); len(ids) != 1 || ids[0] != first.ID {
		t.Fatalf("default should stay on first address, got %v", ids)
	}
}

func TestAddressCreateWithDefaultFlag(t *testing.T) {
	svc, db := setupAddressServiceTest(t)

	if _, err := svc.Create(7, addressInputFixture("Asha")); err != nil {
		t.Fatalf("create first failed: %v", err)
	}

	flag := true
	input := addressInputFixture("Ravi")
	input.IsDefault = &flag
	second, err := svc.Create(7, input)
	if err != nil {
		t.Fatalf("create second failed: %v", err)
	}
	if !second.IsDefault {
		t.Fatal("flagged address should be default")
	}
	if ids := defaultAddressIDs(t, db, 7); len(ids) != 1 || ids[0] != second.ID {
		t.Fatalf("default should move to second address, got %v", ids)
	}
}

func TestAddressSetDefaultMovesFlag(t *testing.T) {
	svc, db := setupAddressServiceTest(t)

	if _, err := svc.Create(7, addressInputFixture("Asha")); err != nil {
		t.Fatalf("create first failed: %v", err)
	}
	second, err := svc.Create(7, addressInputFixture("Ravi"))
	if err != nil {
		t.Fatalf("create second failed: %v", err)
	}

	updated, err := svc.SetDefault(second.ID, 7)
	if err != nil {
		t.Fatalf("set default failed: %v", err)
	}
	if !updated.IsDefault {
		t.Fatal("set default should mark address")
	}
	if ids := defaultAddressIDs(t, db, 7); len(ids) != 1 || ids[0] != second.ID {
		t.Fatalf("exactly the second address should be default, got %v", ids)
	}

	if _, err := svc.SetDefault(999, 7); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing address want ErrNotFound got %v", err)
	}
	// 他人地址不可置默认
	if _, err := svc.SetDefault(second.ID, 8); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign address want ErrNotFound got %v", err)
	}
}

func TestAddressDeleteDefaultPromotesSurvivor(t *testing.T) {
	svc, db := setupAddressServiceTest(t)

	first, err := svc.Create(7, addressInputFixture("Asha"))
	if err != nil {
		t.Fatalf("create first failed: %v", err)
	}
	second, err := svc.Create(7, addressInputFixture("Ravi"))
	if err != nil {
		t.Fatalf("create second failed: %v", err)
	}

	if err := svc.Delete(first.ID, 7); err != nil {
		t.Fatalf("delete default failed: %v", err)
	}
	if ids := defaultAddressIDs(t, db, 7); len(ids) != 1 || ids[0] != second.ID {
		t.Fatalf("survivor should be promoted to default, got %v", ids)
	}

	if err := svc.Delete(second.ID, 7); err != nil {
		t.Fatalf("delete last failed: %v", err)
	}
	addresses, err := svc.ListByUser(7)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(addresses) != 0 {
		t.Fatalf("all addresses should be gone, got %d", len(addresses))
	}

	if err := svc.Delete(999, 7); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing address want ErrNotFound got %v", err)
	}
}

func TestAddressDeleteNonDefaultKeepsDefault(t *testing.T) {
	svc, db := setupAddressServiceTest(t)

	first, err := svc.Create(7, addressInputFixture("Asha"))
	if err != nil {
		t.Fatalf("create first failed: %v", err)
	}
	second, err := svc.Create(7, addressInputFixture("Ravi"))
	if err != nil {
		t.Fatalf("create second failed: %v", err)
	}

	if err := svc.Delete(second.ID, 7); err != nil {
		t.Fatalf("delete non-default failed: %v", err)
	}
	if ids := defaultAddressIDs(t, db, 7); len(ids) != 1 || ids[0] != first.ID {
		t.Fatalf("default should be untouched, got %v", ids)
	}
}

func TestAddressUpdate(t *testing.T) {
	svc, db := setupAddressServiceTest(t)

	if _, err := svc.Create(7, addressInputFixture("Asha")); err != nil {
		t.Fatalf("create first failed: %v", err)
	}
	second, err := svc.Create(7, addressInputFixture("Ravi"))
	if err != nil {
		t.Fatalf("create second failed: %v", err)
	}

	flag := true
	updated, err := svc.Update(second.ID, 7, AddressInput{City: "Mumbai", IsDefault: &flag})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.City != "Mumbai" {
		t.Fatalf("city = %q want Mumbai", updated.City)
	}
	if updated.FullName != "Ravi" {
		t.Fatalf("untouched field changed: %q", updated.FullName)
	}
	if ids := defaultAddressIDs(t, db, 7); len(ids) != 1 || ids[0] != second.ID {
		t.Fatalf("default should move with patch, got %v", ids)
	}

	if _, err := svc.Update(999, 7, AddressInput{City: "Delhi"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing address want ErrNotFound got %v", err)
	}
}

func TestAddressCreateValidation(t *testing.T) {
	svc, _ := setupAddressServiceTest(t)

	input := addressInputFixture("Asha")
	input.Phone = "  "
	if _, err := svc.Create(7, input); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank phone want ErrInvalidInput got %v", err)
	}
}
