package suggestions

import "context"

// Request es lo que recibe el proveedor de sugerencias.
// AvailableProducts ya viene formateado: "<nombre> (Stock: <n>): <descripción>".
type Request struct {
	DoctorID            string   `json:"doctorId"`
	CycleID             string   `json:"cycleId"`
	AvailableProducts   []string `json:"availableProducts"`
	DoctorInterests     string   `json:"doctorInterests"`
	MarketingPriorities string   `json:"marketingPriorities"`
}

type Result struct {
	SuggestedProducts []string `json:"suggestedProducts"`
	Reasoning         string   `json:"reasoning"`
}

// Suggester es el proveedor externo (Gemini, servicio remoto). Opaco para el dominio.
type Suggester interface {
	Suggest(ctx context.Context, req Request) (Result, error)
}
