package gemini

import (
	"strings"
	"text/template"

	"medistock/internal/domain/suggestions"
)

var promptTmpl = template.Must(template.New("suggest").Parse(`Eres un asistente de marketing farmacéutico experto en elegir qué productos promocionar a cada médico.

Recibirás:
- La lista de productos disponibles con su stock y descripción.
- Los intereses y especialidades del médico.
- Las prioridades de marketing del ciclo actual.

Con esa información sugiere los productos a promocionar (usa los nombres tal cual aparecen) y explica tu razonamiento.

Productos disponibles:
{{- range .AvailableProducts}}
- {{.}}
{{- else}}
- (ninguno con stock)
{{- end}}

Intereses del médico: {{.DoctorInterests}}

Prioridades de marketing: {{.MarketingPriorities}}
`))

func buildPrompt(req suggestions.Request) (string, error) {
	var b strings.Builder
	if err := promptTmpl.Execute(&b, req); err != nil {
		return "", err
	}
	return b.String(), nil
}
