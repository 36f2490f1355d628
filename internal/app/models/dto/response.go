package dto

// SuccessResponse is returned by endpoints that have no resource to echo.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
