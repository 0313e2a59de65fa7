package sync

import (
	"slices"

	"github.com/hxeb/hxebclass/pkg/classroom"
)

// Policy is the teacher reconciliation policy. It is immutable once built.
type Policy struct {
	whitelist map[string]struct{}
}

// NewPolicy returns a policy protecting the given teacher addresses from
// removal. Addresses are compared case-insensitively.
func NewPolicy(whitelist ...string) Policy {
	p := Policy{whitelist: make(map[string]struct{}, len(whitelist))}
	for _, email := range whitelist {
		if e := classroom.NormalizeEmail(email); e != "" {
			p.whitelist[e] = struct{}{}
		}
	}
	return p
}

// Protected reports whether email must never be removed.
func (p Policy) Protected(email string) bool {
	_, ok := p.whitelist[classroom.NormalizeEmail(email)]
	return ok
}

// Whitelist returns the protected addresses in sorted order.
func (p Policy) Whitelist() []string {
	out := make([]string, 0, len(p.whitelist))
	for e := range p.whitelist {
		out = append(out, e)
	}
	slices.Sort(out)
	return out
}
