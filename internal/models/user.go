package models

// AccountTimeLayout is the timestamp format stored in the credential file
const AccountTimeLayout = "2006-01-02 15:04:05"

// Account represents a dashboard user.
// The credential file is keyed by email, so Email is not serialized in the record body.
type Account struct {
	Email        string `json:"-"`
	PasswordHash string `json:"password_hash"`
	Initials     string `json:"initials"`
	IsAdmin      bool   `json:"is_admin"`
	CreatedAt    string `json:"created_at"`
	LastReset    string `json:"last_reset,omitempty"`
}

// AccountView is the public projection of an account
type AccountView struct {
	Email     string `json:"email"`
	Initials  string `json:"initials"`
	IsAdmin   bool   `json:"isAdmin"`
	CreatedAt string `json:"createdAt"`
	LastReset string `json:"lastReset,omitempty"`
}

// View strips the password hash
func (a Account) View() AccountView {
	return AccountView{
		Email:     a.Email,
		Initials:  a.Initials,
		IsAdmin:   a.IsAdmin,
		CreatedAt: a.CreatedAt,
		LastReset: a.LastReset,
	}
}
