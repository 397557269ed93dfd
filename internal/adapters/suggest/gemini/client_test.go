package gemini

import (
	"testing"

	"medistock/internal/domain/suggestions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrompt(t *testing.T) {
	p, err := buildPrompt(suggestions.Request{
		AvailableProducts:   []string{"Amoxil (Stock: 10): Antibiótico", "Vitamina D (Stock: 4): Sin descripción."},
		DoctorInterests:     "Cardiología",
		MarketingPriorities: "Lanzamiento X",
	})
	require.NoError(t, err)
	assert.Contains(t, p, "- Amoxil (Stock: 10): Antibiótico\n- Vitamina D (Stock: 4): Sin descripción.")
	assert.Contains(t, p, "Intereses del médico: Cardiología")
	assert.Contains(t, p, "Prioridades de marketing: Lanzamiento X")

	p, err = buildPrompt(suggestions.Request{})
	require.NoError(t, err)
	assert.Contains(t, p, "(ninguno con stock)")
}

func TestParseResult(t *testing.T) {
	res, err := parseResult(` {"suggestedProducts":["Amoxil"],"reasoning":"cardio"} `)
	require.NoError(t, err)
	assert.Equal(t, suggestions.Result{SuggestedProducts: []string{"Amoxil"}, Reasoning: "cardio"}, res)

	_, err = parseResult("")
	assert.Error(t, err)
	_, err = parseResult("Suggested Products: [x]")
	assert.Error(t, err)
}

func TestNew_RequiresKey(t *testing.T) {
	_, err := New(t.Context(), " ", "")
	assert.Error(t, err)
}
