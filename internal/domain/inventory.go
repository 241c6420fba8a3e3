package domain

// Hardware is an inventoried piece of equipment.
type Hardware struct {
	ID              int64     `json:"id"`
	InventoryNumber string    `json:"inventarioPatrimonial"`
	SerialNumber    string    `json:"numeroSerie,omitempty"`
	Class           string    `json:"clase,omitempty"`
	Type            string    `json:"tipo,omitempty"`
	Brand           string    `json:"marca,omitempty"`
	Model           string    `json:"modelo,omitempty"`
	State           string    `json:"estado,omitempty"`
	Location        string    `json:"ubicacionFisica,omitempty"`
	Notes           string    `json:"observaciones,omitempty"`
	CreatedAt       Timestamp `json:"createdAt,omitzero"`
	UpdatedAt       Timestamp `json:"updatedAt,omitzero"`
}

// Software is a licensed software product.
type Software struct {
	ID            int64  `json:"id"`
	Name          string `json:"nombre"`
	Version       string `json:"version,omitempty"`
	Vendor        string `json:"fabricante,omitempty"`
	LicenseType   string `json:"tipoLicencia,omitempty"`
	LicenseNumber string `json:"numeroLicencia,omitempty"`
	LicenseCount  int    `json:"cantidadLicencias,omitempty"`
	ExpiresOn     Date   `json:"fechaVencimiento,omitzero"`
	State         string `json:"estado,omitempty"`
	Notes         string `json:"observaciones,omitempty"`
}
