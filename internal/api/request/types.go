package request

// CreateGuestRequest is the request body for creating a guest player
type CreateGuestRequest struct {
	DisplayName string `json:"display_name"`
}

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateProfileRequest is the request body for updating a profile
type UpdateProfileRequest struct {
	DisplayName string `json:"display_name,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
}

// ChangePasswordRequest is the request body for rotating a password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// CreateSessionRequest is the request body for starting a play session
type CreateSessionRequest struct {
	GameID string `json:"game_id"`
}

// InputRequest is the request body for a game input. Index and Text carry
// the action's payload; which one matters depends on the action.
type InputRequest struct {
	Action string `json:"action"`
	Index  int    `json:"index,omitempty"`
	Text   string `json:"text,omitempty"`
}
