package importer

// DrugImporter is read-only reference data, fetched by id for display.
type DrugImporter struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	LicenseNumber string `json:"licenseNumber"`
}
