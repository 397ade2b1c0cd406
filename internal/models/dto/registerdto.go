package dto

type RegisterRequestDTO struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=72"`
}

type RegisterResponseDTO struct {
	Message string `json:"message"`
}
