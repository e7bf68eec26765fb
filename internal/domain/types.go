package domain

// ID is used across domain entities.
type ID int64

// RequestContext carries authenticated user info when available.
type RequestContext struct {
	UserID ID     `json:"userId"`
	Role   string `json:"role"`
}

func (rc RequestContext) IsAdmin() bool { return rc.Role == "admin" }

// CanAccess reports whether the caller may touch an owner-scoped resource.
func (rc RequestContext) CanAccess(ownerID ID) bool {
	return rc.IsAdmin() || rc.UserID == ownerID
}
