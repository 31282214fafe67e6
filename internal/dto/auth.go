package dto

type RegisterRequestDTO struct {
	Email    string  `json:"email" validate:"required"`
	Password string  `json:"password" validate:"required"`
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
}

type LoginRequestDTO struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UserDTO struct {
	ID               int     `json:"id"`
	Email            string  `json:"email"`
	FullName         *string `json:"full_name"`
	Role             string  `json:"role"`
	TelegramID       *int64  `json:"telegram_id,omitempty"`
	TelegramUsername *string `json:"telegram_username,omitempty"`
}

type AuthResponseDTO struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

type VerifyResponseDTO struct {
	User UserDTO `json:"user"`
}
