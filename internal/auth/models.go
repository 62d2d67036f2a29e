package auth

import "time"

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	BoatName     string    `json:"boat_name"`
	HomePort     string    `json:"home_port"`
	AvatarURL    string    `json:"avatar_url"`
	ShowOnMap    bool      `json:"show_on_map"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	FullName  string `json:"full_name"`
	BoatName  string `json:"boat_name"`
	HomePort  string `json:"home_port"`
	AvatarURL string `json:"avatar_url"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// ProfileUpdate patches the caller's display profile. ShowOnMap is a
// pointer so "leave unchanged" and "hide me" stay distinguishable.
type ProfileUpdate struct {
	FullName  string `json:"full_name"`
	BoatName  string `json:"boat_name"`
	HomePort  string `json:"home_port"`
	AvatarURL string `json:"avatar_url"`
	ShowOnMap *bool  `json:"show_on_map"`
}
