package handler

const (
	errInternalServer     = "Internal server error"
	errInvalidBody        = "Invalid request body"
	errInvalidCredentials = "Invalid credentials , Please Try Again"
	errUserNotFound       = "User not found"
	errUsersNotFound      = "Users not found"
	errResetFailed        = "Failed to reset password"
	msgValidationFailed   = "Validation failed"
)
