package request

type CreateServiceRequestRequest struct {
	Category    string `json:"category" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Location    string `json:"location" binding:"required"`
	Priority    string `json:"priority" binding:"required"`
}

type TransitionRequest struct {
	NewStatus string `json:"new_status" binding:"required"`
	Notes     string `json:"notes"`
}
