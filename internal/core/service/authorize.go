package service

import "github.com/qoder/minijira/internal/core/domain"

// authorizeOwner allows the mutation iff the caller is the recorded owner.
// Reads are deliberately not routed through this check: any authenticated
// identity may read any resource by id.
func authorizeOwner(callerID, ownerID int64, verb, resource string) error {
	if callerID != ownerID {
		return domain.ErrForbidden(verb, resource)
	}
	return nil
}
