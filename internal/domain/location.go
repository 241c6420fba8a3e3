package domain

// Circumscription is a judicial district grouping courts.
type Circumscription struct {
	ID   int64  `json:"id"`
	Name string `json:"nombre"`
	Code string `json:"codigo,omitempty"`
}

// Court is a juzgado, the organizational unit requesting support.
type Court struct {
	ID           int64  `json:"id"`
	Name         string `json:"nombre"`
	Jurisdiction string `json:"fuero,omitempty"`
	Secretariat  string `json:"secretaria,omitempty"`
	Active       bool   `json:"active"`
}
