package dto

type LoginRequestDTO struct {
	Email    string `json:"email" validate:"required,max=254"`
	Password string `json:"password" validate:"required,max=72"`
}

type LoginResponseDTO struct {
	Message string `json:"message"`
	User    string `json:"user"`
}

type LogoutResponseDTO struct {
	Message string `json:"message"`
}
