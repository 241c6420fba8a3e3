package domain

import "time"

// Contract is a maintenance or supply contract with a vendor.
type Contract struct {
	ID            int64  `json:"id"`
	Name          string `json:"nombre"`
	Vendor        string `json:"proveedor"`
	Number        string `json:"numeroContrato,omitempty"`
	StartsOn      Date   `json:"fechaInicio,omitzero"`
	EndsOn        Date   `json:"fechaFin,omitzero"`
	HardwareCover string `json:"coberturaHw,omitempty"`
	SoftwareCover string `json:"coberturaSw,omitempty"`
	SLA           string `json:"slaDescripcion,omitempty"`
	Notes         string `json:"observaciones,omitempty"`
	Active        bool   `json:"active"`
}

// ExpiresWithin reports whether the contract ends between now and now+days.
func (c *Contract) ExpiresWithin(now time.Time, days int) bool {
	if c.EndsOn.IsZero() {
		return false
	}
	today := NewDate(now).Time
	limit := today.AddDate(0, 0, days)
	return !c.EndsOn.Before(today) && !c.EndsOn.After(limit)
}

// InForce reports whether the contract is active and not past its end date.
func (c *Contract) InForce(now time.Time) bool {
	if !c.Active {
		return false
	}
	return c.EndsOn.IsZero() || !c.EndsOn.Before(NewDate(now).Time)
}
