package api

// ListEnvelope is the wrapper shape the travel API returns for collection
// endpoints.
type ListEnvelope[T any] struct {
	Code    string `json:"code"`
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    []T    `json:"data"`
}

// Envelope is the wrapper shape for detail and mutation endpoints.
type Envelope[T any] struct {
	Code    string `json:"code"`
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
	Token   string `json:"token,omitempty"`
}

type uploadEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Url     string `json:"url"`
}
