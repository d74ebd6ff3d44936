package model

// UserResponse struct holds the response data for user login or registration
type UserResponse struct {
	Success     bool   `json:"success"`
	User        User   `json:"user"`
	AccessToken string `json:"token"`
	Message     string `json:"message"`
}

// CompanyResponse struct holds the response data for company login or registration
type CompanyResponse struct {
	Success     bool    `json:"success"`
	Company     Company `json:"company"`
	AccessToken string  `json:"token"`
	Message     string  `json:"message"`
}

// AdminResponse struct holds the response data for admin login or registration
type AdminResponse struct {
	Success     bool   `json:"success"`
	Admin       Admin  `json:"admin"`
	AccessToken string `json:"token"`
	Message     string `json:"message"`
}
