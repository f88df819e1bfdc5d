package types

type ChatRequest struct {
	Restaurant string `json:"restaurant,omitempty"`
	Message    string `json:"message"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

type ClearResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
