// Package authz implements the scope-based authorization guard.
//
// A token scope is an ordered, duplicate-free list of resource names. Order
// matters only for wire serialization stability; authorization decisions use
// membership alone.
package authz

import (
	"strings"

	"github.com/chronogate/chronogate/errors"
)

// ScopeSet is an ordered, duplicate-free sequence of resource names.
type ScopeSet []string

// NewScopeSet builds a ScopeSet from resource names, dropping duplicates
// while preserving first-seen order.
func NewScopeSet(resources ...string) ScopeSet {
	seen := make(map[string]bool, len(resources))
	out := make(ScopeSet, 0, len(resources))
	for _, r := range resources {
		if r == "" || seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}

// ParseScope splits a space-joined wire scope into a ScopeSet.
func ParseScope(wire string) ScopeSet {
	return NewScopeSet(strings.Split(wire, " ")...)
}

// String joins the scope into its space-separated wire form.
func (s ScopeSet) String() string {
	return strings.Join(s, " ")
}

// Contains reports whether resource is a member of the scope.
func (s ScopeSet) Contains(resource string) bool {
	for _, r := range s {
		if r == resource {
			return true
		}
	}
	return false
}

// Checker is the authorization decision interface. Handlers depend on it
// rather than on the concrete guard.
type Checker interface {
	CheckScope(scope ScopeSet, resource string) error
}

// CheckerFunc is an adapter to use ordinary functions as Checker.
type CheckerFunc func(scope ScopeSet, resource string) error

// CheckScope implements Checker.
func (f CheckerFunc) CheckScope(scope ScopeSet, resource string) error {
	return f(scope, resource)
}

// CheckScope denies iff resource is absent from scope. The returned error
// carries the denied resource name for diagnostics.
func CheckScope(scope ScopeSet, resource string) error {
	if scope.Contains(resource) {
		return nil
	}
	return errors.PermissionDenied(resource)
}

// Guard is the default membership-based Checker.
type Guard struct{}

// CheckScope implements Checker.
func (Guard) CheckScope(scope ScopeSet, resource string) error {
	return CheckScope(scope, resource)
}
