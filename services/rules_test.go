package services

import (
	"testing"

	"github.com/FinanzasVH/finanzas-api/models"

	"github.com/stretchr/testify/assert"
)

func TestSuggestRule(t *testing.T) {
	s := SuggestRule("COMPRA WONG SAN MIGUEL LIMA", models.TypeVariableExpense, "Alimentación")

	assert.Equal(t, "COMPRA WONG SAN MIGUEL LIMA", s.Label)
	assert.Equal(t, `COMPRA.*WONG.*SAN`, s.Pattern)
	assert.Equal(t, models.TypeVariableExpense, s.Type)
	assert.Equal(t, "Alimentación", s.Category)

	// The pattern must match the description it came from.
	re, ok := CompilePattern(s.Pattern)
	assert.True(t, ok)
	assert.True(t, re.MatchString("COMPRA WONG SAN MIGUEL LIMA"))
	assert.True(t, re.MatchString("compra wong san isidro"))
}

func TestSuggestRule_EscapesRegexMetacharacters(t *testing.T) {
	s := SuggestRule("IZI*PAGO (LIMA) S.A.C.", models.TypeVariableExpense, "")

	re, ok := CompilePattern(s.Pattern)
	assert.True(t, ok)
	assert.True(t, re.MatchString("IZI*PAGO (LIMA) S.A.C."))
	// The literal star must not act as a quantifier.
	assert.False(t, re.MatchString("IZIPAGO LIMA SAC"))
}

func TestSuggestRule_Defaults(t *testing.T) {
	s := SuggestRule("NETFLIX", "", "")
	assert.Equal(t, models.TypeVariableExpense, s.Type)
	assert.Equal(t, "Otro variable", s.Category)
	assert.Equal(t, `NETFLIX`, s.Pattern)
}

func TestSuggestRule_ShortDescription(t *testing.T) {
	s := SuggestRule("  UBER  ", models.TypeVariableExpense, "Transporte/Gasolina")
	assert.Equal(t, "UBER", s.Label)
	assert.Equal(t, `UBER`, s.Pattern)
}
