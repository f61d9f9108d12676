package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	siteHandler     siteHandler
	galleryHandler  galleryHandler
	authHandler     authHandler
	categoryHandler categoryHandler
	projectHandler  projectHandler
	videoHandler    videoHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Message string `json:"message,omitempty" example:"Failed to load projects"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Additional error details"`
}

// MessageResponse acknowledges a write
// @Description Acknowledgement with the notification text to show
type MessageResponse struct {
	Message string `json:"message" example:"Category added successfully"`
	Status  string `json:"status" example:"ok"`
}

// CredentialsRequest is the admin login form
type CredentialsRequest struct {
	Username string `json:"username" example:"studio"`
	Password string `json:"password" example:"secret"`
}

// SessionResponse reports whether the caller holds an admin session
type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	ExpiresAt     string `json:"expires_at,omitempty"`
}

// CategoryRequest creates a category
type CategoryRequest struct {
	Name string `json:"name" example:"Weddings"`
}

// FilterRequest names one category for quick-select or toggle
type FilterRequest struct {
	Category string `json:"category" example:"Weddings"`
}

// DeletedResponse acknowledges a delete and carries the list total after it
type DeletedResponse struct {
	MessageResponse
	Total int64 `json:"total"`
}
