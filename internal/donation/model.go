package donation

import "time"

type RequestStatus string

// Status transitions are driven by the backend; the client only
// observes them.
const (
	RequestStatusPending         RequestStatus = "PENDING"
	RequestStatusQuotationIssued RequestStatus = "QUOTATION_ISSUED"
	RequestStatusInDelivery      RequestStatus = "IN_DELIVERY"
	RequestStatusCompleted       RequestStatus = "COMPLETED"
)

type DonationRequest struct {
	RequestID      uint          `json:"requestId"`
	PatientID      uint          `json:"patientId"`
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	Status         RequestStatus `json:"status"`
	DefaultPrice   float64       `json:"defaultPrice"`
	RemainingPrice float64       `json:"remainingPrice"`
	CreatedAt      time.Time     `json:"createdAt"`
}
