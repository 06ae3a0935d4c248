package dto

type RegisterRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type RegisterResponse struct {
	Email string `json:"email"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string     `json:"access_token"`
	User        AccountDTO `json:"user"`
}

type AccountDTO struct {
	Email            string  `json:"email"`
	NoOfTimeLoggedIn int     `json:"no_of_time_logged_in"`
	LatestLoginAt    *string `json:"latest_login_at,omitempty"`
}
