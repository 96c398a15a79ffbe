package dto

type CreateReportRequest struct {
	MessageID string `json:"messageId"`
	Reason    string `json:"reason,omitempty"`
}

type ReviewReportRequest struct {
	Status       string `json:"status"`
	ReviewerNote string `json:"reviewerNote,omitempty"`
}
