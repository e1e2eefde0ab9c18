// Package staff models employees as flat records with an enumerated role and
// an explicit capability set, replacing the role-per-subclass hierarchy of
// older POS systems.
package staff

// Role enumerates the positions that operate the console.
type Role string

const (
	RoleRegionalManager Role = "REGIONAL_MANAGER"
	RoleManager         Role = "MANAGER"
	RoleCashier         Role = "CASHIER"
	RoleEmployee        Role = "EMPLOYEE"
	RoleMaintenance     Role = "MAINTENANCE"
)

// Capability names an operation a role may perform.
type Capability string

const (
	CapCreateStore        Capability = "create_store"
	CapApplyDiscount      Capability = "apply_discount"
	CapManageCoupons      Capability = "manage_coupons"
	CapProcessSale        Capability = "process_sale"
	CapProcessReturn      Capability = "process_return"
	CapPlaceSupplierOrder Capability = "place_supplier_order"
	CapManageInventory    Capability = "manage_inventory"
	CapMaintenanceTicket  Capability = "maintenance_ticket"
)

var roleCapabilities = map[Role]map[Capability]bool{
	RoleRegionalManager: {
		CapCreateStore: true, CapApplyDiscount: true, CapManageCoupons: true,
		CapProcessSale: true, CapProcessReturn: true, CapPlaceSupplierOrder: true,
		CapManageInventory: true, CapMaintenanceTicket: true,
	},
	RoleManager: {
		CapApplyDiscount: true, CapManageCoupons: true, CapProcessSale: true,
		CapProcessReturn: true, CapPlaceSupplierOrder: true, CapManageInventory: true,
		CapMaintenanceTicket: true,
	},
	RoleCashier: {
		CapProcessSale: true, CapProcessReturn: true,
	},
	RoleEmployee: {
		CapManageInventory: true,
	},
	RoleMaintenance: {
		CapMaintenanceTicket: true,
	},
}

// RoleCan reports whether the role carries the capability.
func RoleCan(r Role, c Capability) bool {
	return roleCapabilities[r][c]
}

// Employee is a flat staff record; capabilities derive from Role alone.
type Employee struct {
	ID      string
	Name    string
	Role    Role
	StoreID string
}
