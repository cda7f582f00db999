package authorize

type Action string
type Resource string
type Role string

// ----------------------------
// Actions
// ----------------------------

const (
	ActionAdd    Action = "add"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

var KnownActions = map[Action]struct{}{
	ActionAdd: {}, ActionEdit: {}, ActionDelete: {},
}

// ----------------------------
// Resources
// ----------------------------

const (
	ResourcePatient Resource = "patient"
	ResourceDental  Resource = "dental" // tooth chart
	ResourceUser    Resource = "user"
)

var KnownResources = map[Resource]struct{}{
	ResourcePatient: {}, ResourceDental: {}, ResourceUser: {},
}

// ----------------------------
// Roles
// ----------------------------

const (
	RoleSuperAdmin    Role = "super-admin"
	RoleDoctor        Role = "doctor"
	RoleAdministrator Role = "administrator"
)

var KnownRoles = map[Role]struct{}{
	RoleSuperAdmin: {}, RoleDoctor: {}, RoleAdministrator: {},
}

// PermissionPolicy is one allow row of the capability table.
type PermissionPolicy struct {
	Subject Role
	Object  Resource
	Action  Action
}
