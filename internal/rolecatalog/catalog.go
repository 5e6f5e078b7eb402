// Package rolecatalog is the closed catalog of staff roles. Every
// provisioning pathway derives its allowed role set from the one master
// catalog by filtering on visibility tier, so the sets cannot drift apart.
package rolecatalog

// Tier is the visibility level at which a role may be assigned.
type Tier int

const (
	// TierSelfService roles may be chosen by anyone, including the
	// unauthenticated self-registration form.
	TierSelfService Tier = iota
	// TierPublic roles may additionally be requested through the public
	// join-request pathway.
	TierPublic
	// TierAdmin roles are assignable only by an authenticated administrator.
	TierAdmin
	// TierSuperadmin roles are never assignable through any onboarding
	// pathway.
	TierSuperadmin
)

type Role struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Category string `json:"category"`
	Tier     Tier   `json:"-"`
}

const (
	CategoryAdmin       = "Admin"
	CategoryExecutive   = "Executive"
	CategoryFundraising = "Fundraising"
	CategoryPrograms    = "Programs"
	CategoryOperations  = "Operations"
	CategoryFinance     = "Finance"
	CategorySupport     = "Support"
)

const (
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
)

// categoryOrder conveys organizational hierarchy. It is deliberately not
// alphabetical.
var categoryOrder = []string{
	CategoryAdmin,
	CategoryExecutive,
	CategoryFundraising,
	CategoryPrograms,
	CategoryOperations,
	CategoryFinance,
	CategorySupport,
}

var catalog = []Role{
	{Key: RoleAdmin, Label: "Administrator", Category: CategoryAdmin, Tier: TierAdmin},
	{Key: RoleSuperadmin, Label: "Super Administrator", Category: CategoryAdmin, Tier: TierSuperadmin},
	{Key: "executive_director", Label: "Executive Director", Category: CategoryExecutive, Tier: TierAdmin},
	{Key: "deputy_director", Label: "Deputy Director", Category: CategoryExecutive, Tier: TierAdmin},
	{Key: "development_director", Label: "Development Director", Category: CategoryFundraising, Tier: TierPublic},
	{Key: "fundraising_manager", Label: "Fundraising Manager", Category: CategoryFundraising, Tier: TierPublic},
	{Key: "grant_writer", Label: "Grant Writer", Category: CategoryFundraising, Tier: TierSelfService},
	{Key: "donor_relations", Label: "Donor Relations Coordinator", Category: CategoryFundraising, Tier: TierSelfService},
	{Key: "program_manager", Label: "Program Manager", Category: CategoryPrograms, Tier: TierPublic},
	{Key: "volunteer_coordinator", Label: "Volunteer Coordinator", Category: CategoryPrograms, Tier: TierSelfService},
	{Key: "operations_manager", Label: "Operations Manager", Category: CategoryOperations, Tier: TierPublic},
	{Key: "office_manager", Label: "Office Manager", Category: CategoryOperations, Tier: TierSelfService},
	{Key: "finance_manager", Label: "Finance Manager", Category: CategoryFinance, Tier: TierPublic},
	{Key: "accountant", Label: "Accountant", Category: CategoryFinance, Tier: TierPublic},
	{Key: "it_support", Label: "IT Support", Category: CategorySupport, Tier: TierPublic},
	{Key: "support_staff", Label: "Support Staff", Category: CategorySupport, Tier: TierSelfService},
}

var byKey = func() map[string]Role {
	m := make(map[string]Role, len(catalog))
	for _, r := range catalog {
		m[r.Key] = r
	}
	return m
}()

// Lookup returns the catalog entry for a role key.
func Lookup(key string) (Role, bool) {
	r, ok := byKey[key]
	return r, ok
}

// All returns every catalog entry in declaration order.
func All() []Role {
	out := make([]Role, len(catalog))
	copy(out, catalog)
	return out
}

type CategoryGroup struct {
	Category string `json:"category"`
	Roles    []Role `json:"roles"`
}

// Grouped returns catalog entries grouped by category, in the fixed
// organizational category order.
func Grouped() []CategoryGroup {
	groups := make([]CategoryGroup, 0, len(categoryOrder))
	for _, cat := range categoryOrder {
		var roles []Role
		for _, r := range catalog {
			if r.Category == cat {
				roles = append(roles, r)
			}
		}
		if len(roles) > 0 {
			groups = append(groups, CategoryGroup{Category: cat, Roles: roles})
		}
	}
	return groups
}

func filter(keep func(Role) bool) []Role {
	var out []Role
	for _, r := range catalog {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// SelfRegistration is the small operationally safe subset exposed on the
// unauthenticated staff self-registration form.
func SelfRegistration() []Role {
	return filter(func(r Role) bool { return r.Tier == TierSelfService })
}

// JoinRequest is the set requestable through the public join-request
// pathway. Broader than self-registration but still excludes the Admin and
// Executive categories.
func JoinRequest() []Role {
	return filter(func(r Role) bool { return r.Tier <= TierPublic })
}

// AdminAssignable is the superset an authenticated administrator may assign
// directly. Superadmin stays out of every onboarding pathway.
func AdminAssignable() []Role {
	return filter(func(r Role) bool { return r.Tier <= TierAdmin })
}

// InviteEligible is the set an administrator may pre-authorize through an
// invitation: everything assignable except the Admin category.
func InviteEligible() []Role {
	return filter(func(r Role) bool { return r.Tier <= TierAdmin && r.Category != CategoryAdmin })
}

// Contains reports whether a role key is a member of the given set.
func Contains(set []Role, key string) bool {
	for _, r := range set {
		if r.Key == key {
			return true
		}
	}
	return false
}
