package dto

// SignupRequest registro público: crea la empresa (con código asignado por el
// allocator) y su primer usuario admin, en una sola transacción.
type SignupRequest struct {
	CompanyName string `json:"company_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Name        string `json:"name"`
}

// SignupResponse empresa y usuario admin recién creados.
type SignupResponse struct {
	Company CompanyResponse `json:"company"`
	User    UserResponse    `json:"user"`
}
