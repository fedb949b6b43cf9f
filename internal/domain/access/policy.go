package access

import "github.com/acruxgo/banos-forum-backend/internal/domain/entity"

// Resource recurso protegido.
type Resource string

// Action clase de acción sobre un recurso.
type Action string

const (
	ResourceTenants    Resource = "tenants"
	ResourceAccounts   Resource = "accounts"
	ResourceCategories Resource = "categories"
	ResourceProducts   Resource = "products"
	ResourceShifts     Resource = "shifts"
	ResourceSales      Resource = "sales"
)

const (
	ActionRead    Action = "read"
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionRestore Action = "restore"
	ActionToggle  Action = "toggle"
	ActionOpen    Action = "open"
	ActionClose   Action = "close"
	ActionVoid    Action = "void"
)

// Permission par (recurso, acción) que indexa la política.
type Permission struct {
	Resource Resource
	Action   Action
}

// Rule roles admitidos para un permiso. Administrative=true admite además al operador.
type Rule struct {
	Roles          []entity.Role
	Administrative bool
}

// Policy tabla declarativa de permisos. Un permiso ausente se deniega.
type Policy map[Permission]Rule

var (
	staff    = []entity.Role{entity.RoleOwner, entity.RoleSupervisor, entity.RoleCashier}
	managers = []entity.Role{entity.RoleOwner, entity.RoleSupervisor}
	owners   = []entity.Role{entity.RoleOwner}
)

// DefaultPolicy política de la aplicación. El operador observa y administra negocios y cuentas,
// pero no opera el negocio (catálogo, turnos, ventas).
var DefaultPolicy = Policy{
	{ResourceTenants, ActionRead}:   {Administrative: true},
	{ResourceTenants, ActionCreate}: {Administrative: true},
	{ResourceTenants, ActionUpdate}: {Administrative: true},
	{ResourceTenants, ActionToggle}: {Administrative: true},

	{ResourceAccounts, ActionRead}:    {Roles: staff, Administrative: true},
	{ResourceAccounts, ActionCreate}:  {Roles: owners, Administrative: true},
	{ResourceAccounts, ActionUpdate}:  {Roles: owners, Administrative: true},
	{ResourceAccounts, ActionDelete}:  {Roles: owners, Administrative: true},
	{ResourceAccounts, ActionRestore}: {Roles: owners, Administrative: true},
	{ResourceAccounts, ActionToggle}:  {Roles: owners, Administrative: true},

	{ResourceCategories, ActionRead}:    {Roles: staff, Administrative: true},
	{ResourceCategories, ActionCreate}:  {Roles: managers},
	{ResourceCategories, ActionUpdate}:  {Roles: managers},
	{ResourceCategories, ActionDelete}:  {Roles: managers},
	{ResourceCategories, ActionRestore}: {Roles: managers},
	{ResourceCategories, ActionToggle}:  {Roles: managers},

	{ResourceProducts, ActionRead}:    {Roles: staff, Administrative: true},
	{ResourceProducts, ActionCreate}:  {Roles: managers},
	{ResourceProducts, ActionUpdate}:  {Roles: managers},
	{ResourceProducts, ActionDelete}:  {Roles: managers},
	{ResourceProducts, ActionRestore}: {Roles: managers},
	{ResourceProducts, ActionToggle}:  {Roles: managers},

	{ResourceShifts, ActionRead}:  {Roles: staff, Administrative: true},
	{ResourceShifts, ActionOpen}:  {Roles: staff},
	{ResourceShifts, ActionClose}: {Roles: staff},

	{ResourceSales, ActionRead}:   {Roles: staff, Administrative: true},
	{ResourceSales, ActionCreate}: {Roles: staff},
	{ResourceSales, ActionVoid}:   {Roles: managers},
}
