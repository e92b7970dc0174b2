package model

// Response is the uniform JSON envelope carried by every API response.
// Success is always present; the remaining fields depend on the endpoint.
type Response struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Count   *int          `json:"count,omitempty"`
	Data    any           `json:"data,omitempty"`
	User    *UserResponse `json:"user,omitempty"`
	Token   string        `json:"token,omitempty"`
}
