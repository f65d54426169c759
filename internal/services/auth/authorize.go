package auth

import (
	"strings"

	"github.com/ivankudzin/tailmates/internal/domain/enums"
)

type Capability string

const (
	CapSwipe        Capability = "swipe"
	CapDiscover     Capability = "discover"
	CapViewMatches  Capability = "view_matches"
	CapManagePets   Capability = "manage_pets"
	CapRunReconcile Capability = "run_reconcile"
)

var ownerCapabilities = []Capability{CapSwipe, CapDiscover, CapViewMatches, CapManagePets}

var roleCapabilities = map[enums.Role][]Capability{
	enums.RoleCustomer: ownerCapabilities,
	enums.RoleMerchant: ownerCapabilities,
	enums.RoleManager:  {CapRunReconcile},
	enums.RoleAdmin:    append(append([]Capability{}, ownerCapabilities...), CapRunReconcile),
}

// Decision is the outcome of Authorize. Missing lists the requested
// capabilities the role lacks, in request order.
type Decision struct {
	Role    enums.Role
	Missing []Capability
}

func (d Decision) Allowed() bool {
	return len(d.Missing) == 0
}

func (d Decision) Reason() string {
	if d.Allowed() {
		return ""
	}
	names := make([]string, 0, len(d.Missing))
	for _, c := range d.Missing {
		names = append(names, string(c))
	}
	return "role " + string(d.Role) + " lacks " + strings.Join(names, ", ")
}

// Authorize checks that role holds every requested capability.
// Roles outside the closed set hold none.
func Authorize(role enums.Role, caps ...Capability) Decision {
	granted := roleCapabilities[role]

	decision := Decision{Role: role}
	for _, want := range caps {
		if !hasCapability(granted, want) {
			decision.Missing = append(decision.Missing, want)
		}
	}
	return decision
}

func Capabilities(role enums.Role) []Capability {
	granted := roleCapabilities[role]
	out := make([]Capability, len(granted))
	copy(out, granted)
	return out
}

func hasCapability(granted []Capability, want Capability) bool {
	for _, c := range granted {
		if c == want {
			return true
		}
	}
	return false
}
