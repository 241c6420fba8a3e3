package domain

// DashboardStats aggregates counters for the dashboard screen.
type DashboardStats struct {
	OpenTickets         int64 `json:"ticketsAbiertos"`
	ClosedThisMonth     int64 `json:"ticketsCerradosMes"`
	HighPriorityTickets int64 `json:"ticketsPrioridadAlta"`
	TotalHardware       int64 `json:"totalHardware"`
	TotalSoftware       int64 `json:"totalSoftware"`
	ContractsInForce    int64 `json:"contratosVigentes"`
	ContractsExpiring   int64 `json:"contratosProximosVencer"`
}
