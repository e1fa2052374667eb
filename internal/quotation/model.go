package quotation

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusAccepted Status = "ACCEPTED"
	StatusRejected Status = "REJECTED"
)

type MedicinePrice struct {
	MedicineName string  `json:"medicineName,omitempty"`
	Price        float64 `json:"price"`
}

// Quotation is a drug importer's offer against a donation request.
// Many quotations reference one request; at most one of them may end
// up ACCEPTED.
type Quotation struct {
	ID             uint            `json:"id"`
	DrugImporterID uint            `json:"drugImporterId"`
	RequestID      uint            `json:"requestId"`
	Discount       float64         `json:"discount"`
	MedicinePrices []MedicinePrice `json:"medicinePrices"`
	Status         Status          `json:"status"`
}
