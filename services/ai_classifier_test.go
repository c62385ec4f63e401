package services

import (
	"testing"

	"github.com/FinanzasVH/finanzas-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSuggestion(t *testing.T) {
	s, err := parseSuggestion(`{"type": "variable_expense", "category": "Restaurante", "clean_description": "Chifa Union"}`)
	require.NoError(t, err)
	assert.Equal(t, models.TypeVariableExpense, s.Type)
	assert.Equal(t, "Restaurante", s.Category)
	assert.Equal(t, "Chifa Union", s.CleanDescription)
}

func TestParseSuggestion_ToleratesProse(t *testing.T) {
	s, err := parseSuggestion("Claro, aquí está el análisis:\n{\"type\": \"FIXED_EXPENSE\", \"category\": \"Seguros\", \"clean_description\": \"Rimac\"}\nEspero que ayude.")
	require.NoError(t, err)
	// type is lowercased before validation downstream
	assert.Equal(t, models.TypeFixedExpense, s.Type)
	assert.Equal(t, "Seguros", s.Category)
}

func TestParseSuggestion_Errors(t *testing.T) {
	_, err := parseSuggestion("no hay json aquí")
	assert.Error(t, err)

	_, err = parseSuggestion(`{"type": "income", "category": ""}`)
	assert.Error(t, err)

	_, err = parseSuggestion(`{broken`)
	assert.Error(t, err)
}

func TestAIClassifier_DisabledWithoutKey(t *testing.T) {
	c := &AIClassifier{}
	assert.False(t, c.Enabled())

	_, err := c.Suggest("NETFLIX.COM")
	assert.Error(t, err)
}
