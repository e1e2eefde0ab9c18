package staff_test

import (
	"testing"

	"github.com/noah-isme/retail-console/internal/staff"
)

func TestRoleCapabilities(t *testing.T) {
	if !staff.RoleCan(staff.RoleCashier, staff.CapProcessSale) {
		t.Fatal("cashier must be able to process sales")
	}
	if staff.RoleCan(staff.RoleCashier, staff.CapApplyDiscount) {
		t.Fatal("cashier must not apply discounts")
	}
	if !staff.RoleCan(staff.RoleManager, staff.CapPlaceSupplierOrder) {
		t.Fatal("manager must place supplier orders")
	}
	if staff.RoleCan(staff.RoleMaintenance, staff.CapProcessSale) {
		t.Fatal("maintenance must not process sales")
	}
	if !staff.RoleCan(staff.RoleRegionalManager, staff.CapCreateStore) {
		t.Fatal("regional manager must create stores")
	}
	if staff.RoleCan(staff.RoleManager, staff.CapCreateStore) {
		t.Fatal("store manager must not create stores")
	}
	if staff.RoleCan(staff.Role("GHOST"), staff.CapProcessSale) {
		t.Fatal("unknown roles carry no capabilities")
	}
}
