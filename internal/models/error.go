package models

import "errors"

// APIError represents a standardized error response for the API
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error code constants
const (
	// General errors
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeConflict         = "CONFLICT"
	ErrCodeInternalServer   = "INTERNAL_SERVER_ERROR"
	ErrCodeValidationFailed = "VALIDATION_FAILED"
)

// Sentinel errors returned by the service layer. Controllers translate these
// into HTTP status codes; anything unrecognized is treated as internal.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrDishNotFound      = errors.New("dish not found")
	ErrCartNotFound      = errors.New("cart not found")
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrCartAlreadyExists = errors.New("active cart already exists")
	ErrEmailTaken        = errors.New("user already exists")
	ErrAdminOnly         = errors.New("admin role required")
	ErrInvalidCategory   = errors.New("invalid dish category")
	ErrInvalidStatus     = errors.New("invalid order status")
)

// Client-facing message texts
const (
	MsgMissingRequiredFields = "Missing required fields"
	MsgInternalServerError   = "Internal server error"

	MsgUserNotFound     = "User not found"
	MsgUserExists       = "User already exists"
	MsgAdminOnly        = "Only admins can create dishes."
	MsgSingleAdmin      = "Only one admin user can exist. You cannot create another admin."
	MsgSignupSuccess    = "User signed up successfully"
	MsgSignupFailed     = "Signup failed"
	MsgInvalidCreds     = "Invalid credentials"
	MsgUnauthorized     = "Unauthorized access"
	MsgInvalidToken     = "Invalid token"
	MsgTokenExpired     = "Token expired"

	MsgDishNotFound        = "Dish not found"
	MsgDishDeleted         = "Dish deleted successfully"
	MsgInvalidCategory     = "Invalid category"
	MsgInvalidPageAndLimit = "Invalid page or limit"

	MsgCartNotFound       = "Cart not found"
	MsgCartOrDishNotFound = "Cart or dish not found"
	MsgCartItemNotFound   = "Cart item not found"
	MsgCartItemRemoved    = "Cart item removed successfully"
	MsgCartAlreadyExists  = "An active cart already exists for this user"
	MsgCheckoutSuccess    = "Checkout completed successfully"

	MsgOrderNotFound      = "Order not found"
	MsgOrderStatusUpdated = "Order status updated successfully"
	MsgInvalidOrderStatus = "Invalid order status"
)

// NewAPIError creates a new API error with the given code and message
func NewAPIError(code, message string, details ...map[string]interface{}) APIError {
	err := APIError{
		Code:    code,
		Message: message,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}
