package dto

// LoginRequest carries credentials for any of the three portals. Identifier
// is a matrix number for students and a staff ID number for staff/admins.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required" example:"AM2110012345"`
	Password   string `json:"password" binding:"required" example:"secret123"`
	Portal     string `json:"portal" binding:"required,oneof=STUDENT STAFF ADMIN" example:"STUDENT"`
}

// LoginResponse returns the issued token pair
type LoginResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	ExpiresIn        int    `json:"expiresIn" example:"3600"`
	RefreshExpiresIn int    `json:"refreshExpiresIn" example:"2592000"`
	Name             string `json:"name" example:"Aina Zulaikha"`
	Role             string `json:"role" example:"STUDENT"`
}

// RefreshTokenRequest exchanges a refresh token for a new pair
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// ChangePasswordRequest updates the caller's own password
type ChangePasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// ForgotPasswordRequest asks for a recovery mail. The identifier/email pair
// must match an existing record before anything is sent.
type ForgotPasswordRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Portal     string `json:"portal" binding:"required,oneof=STUDENT STAFF"`
}
