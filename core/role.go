package core

// Role identifies one of the five agent variants. The set is closed: the
// orchestrator plus four specialists. New roles require a new profile and a
// registry entry, not ad-hoc string values.
type Role string

const (
	// RoleOrchestrator analyzes requests, decomposes them and synthesizes results.
	RoleOrchestrator Role = "orchestrator"
	// RoleThinker handles deep analysis, complex reasoning and planning.
	RoleThinker Role = "thinker"
	// RoleSpeed handles quick answers, code generation and formatting.
	RoleSpeed Role = "speed"
	// RoleResearcher handles web search, data gathering and fact-checking.
	RoleResearcher Role = "researcher"
	// RoleReasoner handles math, logic and step-by-step verification.
	RoleReasoner Role = "reasoner"
)

// SpecialistRoles returns the four specialist roles in their fixed order.
// Consensus pipelines query exactly this set.
func SpecialistRoles() []Role {
	return []Role{RoleThinker, RoleSpeed, RoleResearcher, RoleReasoner}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleOrchestrator, RoleThinker, RoleSpeed, RoleResearcher, RoleReasoner:
		return true
	}
	return false
}
