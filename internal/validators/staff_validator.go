package validators

type LoginRequest struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	FirstName   *string                `json:"firstName" validate:"omitempty,min=1,max=50"`
	LastName    *string                `json:"lastName" validate:"omitempty,min=1,max=50"`
	Phone       *string                `json:"phone" validate:"omitempty,phone_number"`
	Preferences map[string]interface{} `json:"preferences"`
}
