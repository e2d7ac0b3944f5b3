package auth

// User is the canonical internal identity record. It contains facts
// only, no decisions.
type User struct {
	ID         int64  `json:"id"`         // assigned by the store at creation; zero until persisted
	FacebookID string `json:"facebookId"` // provider-assigned unique identifier, natural key
	Email      string `json:"email"`      // provider-supplied, never refreshed after creation
	FullName   string `json:"fullName"`   // provider-supplied display name
}

// Persisted reports whether the record has been assigned its ID by the
// store. Only persisted records may be cached.
func (u *User) Persisted() bool {
	return u != nil && u.ID != 0
}
