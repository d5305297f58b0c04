// Package security implements per-record access control and content
// sealing for critical-priority records.
package security

import "sync"

// Decision is the explicit result of an access check, distinguishing
// a rule-based grant from the no-rule default.
type Decision int

const (
	// Allowed means the principal is a member of the record's ACL.
	Allowed Decision = iota
	// AllowedNoRule means no ACL exists and the gate is fail-open.
	AllowedNoRule
	// Denied means an ACL exists and excludes the principal.
	Denied
	// DeniedNoRule means no ACL exists and the gate is default-deny.
	DeniedNoRule
)

// Granted reports whether the decision permits access.
func (d Decision) Granted() bool {
	return d == Allowed || d == AllowedNoRule
}

func (d Decision) String() string {
	switch d {
	case Allowed:
		return "allowed"
	case AllowedNoRule:
		return "allowed (no rule)"
	case Denied:
		return "denied"
	case DeniedNoRule:
		return "denied (no rule)"
	}
	return "unknown"
}

// Gate holds per-record ACLs for the life of the process.
type Gate struct {
	mu          sync.RWMutex
	acl         map[string]map[string]bool
	defaultDeny bool
}

// NewGate creates a gate. With defaultDeny false the gate is fail-open:
// records without an ACL are accessible to any principal.
func NewGate(defaultDeny bool) *Gate {
	return &Gate{
		acl:         make(map[string]map[string]bool),
		defaultDeny: defaultDeny,
	}
}

// SetAccess replaces the full permitted-principal set for an id.
// An empty set leaves a rule in place that denies every principal.
func (g *Gate) SetAccess(id string, principals []string) {
	set := make(map[string]bool, len(principals))
	for _, p := range principals {
		if p != "" {
			set[p] = true
		}
	}
	g.mu.Lock()
	g.acl[id] = set
	g.mu.Unlock()
}

// ClearAccess removes the rule for an id, reverting it to the default
// policy.
func (g *Gate) ClearAccess(id string) {
	g.mu.Lock()
	delete(g.acl, id)
	g.mu.Unlock()
}

// Check evaluates whether principal may touch the record with this id.
func (g *Gate) Check(id, principal string) Decision {
	g.mu.RLock()
	set, ok := g.acl[id]
	g.mu.RUnlock()

	if !ok {
		if g.defaultDeny {
			return DeniedNoRule
		}
		return AllowedNoRule
	}
	if set[principal] {
		return Allowed
	}
	return Denied
}
