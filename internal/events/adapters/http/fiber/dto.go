package fiber

// CreateEventRequest represents a collected page view or custom event
// @Description Website event payload
type CreateEventRequest struct {
	Website   string `json:"website" example:"0b7c1a3e-5f0c-4a8e-9a43-6a4d2f6a1f10"`
	SessionID string `json:"session_id" example:"5a0d1c52-1e4b-4c39-8d6f-0f9b7f3e2a11"`
	VisitID   string `json:"visit_id"`
	URL       string `json:"url" example:"/pricing"`
	Query     string `json:"query"`
	Referrer  string `json:"referrer" example:"https://www.google.com/"`
	Title     string `json:"title"`
	Name      string `json:"name" example:"signup"`
	OS        string `json:"os"`
	Browser   string `json:"browser"`
	Device    string `json:"device"`
	Country   string `json:"country" example:"DE"`
	Region    string `json:"region"`
	City      string `json:"city"`
	Timestamp int64  `json:"timestamp" example:"1717243200"`
}

type CreateEventResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type BulkCreateEventsRequest struct {
	Events []CreateEventRequest `json:"events"`
}

type BulkCreateEventsResponse struct {
	Created    int `json:"created"`
	Duplicates int `json:"duplicates"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_event"`
	Message string `json:"message,omitempty" example:"Event payload is invalid"`
}
