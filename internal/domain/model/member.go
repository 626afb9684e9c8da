package model

// Profile is the signed-in shopper's account view.
type Profile struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Nickname string `json:"nickname,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	Nickname string `json:"nickname,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

// LoginRequest is a credential login toward the backend.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the backend's answer to a successful login: the bearer
// credential plus the shopper's display name for caching.
type LoginResult struct {
	AccessToken string `json:"accessToken"`
	Name        string `json:"name,omitempty"`
}

// SignupRequest registers a new shopper.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
}
