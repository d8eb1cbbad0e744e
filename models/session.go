package models

// User is the authenticated profile returned by the remote demo API.
type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Gender    string `json:"gender"`
	Image     string `json:"image"`
}

// Session is the persisted proof of authentication: the bearer token handed
// out by the remote API plus the profile it belongs to.
type Session struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

// Valid reports whether the session is well-formed. A token without a
// profile, or the other way around, counts as no session at all.
func (s Session) Valid() bool {
	return s.AccessToken != "" && s.User.ID > 0 && s.User.Username != ""
}
