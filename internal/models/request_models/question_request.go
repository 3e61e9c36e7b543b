package request_models

type QuestionRequest struct {
	Category string `json:"category"`
}

type QuestionBatchRequest struct {
	Category string `json:"category"`
	Count    int    `json:"count,omitempty"`
}
