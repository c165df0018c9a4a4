// Package authz holds the authorization predicates shared by every resource.
package authz

// Anonymous is the caller id of a request that carried no credentials.
const Anonymous uint = 0

// IsOwner reports whether caller may mutate a resource owned by owner. An
// anonymous caller never owns anything.
func IsOwner(caller, owner uint) bool {
	return caller != Anonymous && caller == owner
}
