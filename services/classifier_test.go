package services

import (
	"testing"

	"github.com/FinanzasVH/finanzas-api/models"

	"github.com/stretchr/testify/assert"
)

func TestClassify_SystemRules(t *testing.T) {
	tests := []struct {
		name        string
		description string
		amount      float64
		wantType    models.TxType
		wantCat     string
	}{
		{"supermarket", "COMPRA WONG SAN MIGUEL", -150.00, models.TypeVariableExpense, "Alimentación"},
		{"subscription", "NETFLIX.COM 888-1234", -44.90, models.TypeFixedExpense, "Suscripciones"},
		{"salary", "ABONO SUELDO NOVIEMBRE", 3500.00, models.TypeIncome, "Sueldo"},
		{"card payment", "BM. PAGO TARJETA BBVA", -1200.00, models.TypeDebtPayment, "Tarjeta BBVA"},
		{"case insensitive", "netflix mensual", -44.90, models.TypeFixedExpense, "Suscripciones"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(tt.description, tt.amount, nil)
			assert.Equal(t, tt.wantType, c.Type)
			assert.Equal(t, tt.wantCat, c.Category)
			assert.Equal(t, models.ConfidenceRuleMatch, c.Confidence)
		})
	}
}

func TestClassify_CustomRulesBeforeSystem(t *testing.T) {
	custom := []models.ClassificationRule{
		{Label: "Netflix compartido", Pattern: `NETFLIX`, Type: models.TypeVariableExpense, Category: "Entretenimiento"},
	}
	c := Classify("NETFLIX.COM", -44.90, custom)
	assert.Equal(t, models.TypeVariableExpense, c.Type)
	assert.Equal(t, "Entretenimiento", c.Category)
	assert.Equal(t, "Netflix compartido", c.RuleLabel)
}

func TestClassify_PositiveAmountForcesIncome(t *testing.T) {
	// Netflix rule says fixed_expense, but a refund is money in.
	c := Classify("NETFLIX DEVOLUCION", 44.90, nil)
	assert.Equal(t, models.TypeIncome, c.Type)
	assert.Equal(t, "Suscripciones", c.Category)
	assert.Equal(t, models.ConfidenceRuleMatch, c.Confidence)
}

func TestClassify_FallbackThreshold(t *testing.T) {
	small := Classify("XYZ DESCONOCIDO", -499.99, nil)
	assert.Equal(t, models.TypeVariableExpense, small.Type)
	assert.Equal(t, "Otro variable", small.Category)
	assert.Equal(t, models.ConfidenceFallback, small.Confidence)

	large := Classify("XYZ DESCONOCIDO", -500.00, nil)
	assert.Equal(t, models.TypeFixedExpense, large.Type)
	assert.Equal(t, "Otro fijo", large.Category)

	income := Classify("XYZ DESCONOCIDO", 10.00, nil)
	assert.Equal(t, models.TypeIncome, income.Type)
	assert.Equal(t, "Otro ingreso", income.Category)
}

func TestClassify_InternalTransferRule(t *testing.T) {
	c := Classify("TRANSF.BCO.BBVA CONTINENTAL", -500.00, nil)
	assert.True(t, c.IsInternal)
	assert.Equal(t, "Movimiento interno", c.Category)
}

func TestClassify_Idempotent(t *testing.T) {
	first := Classify("COMPRA PLAZA VEA", -80.00, nil)
	second := Classify("COMPRA PLAZA VEA", -80.00, nil)
	assert.Equal(t, first, second)
}

func TestClassify_InvalidCustomPatternNeverMatches(t *testing.T) {
	custom := []models.ClassificationRule{
		{Label: "roto", Pattern: `[unclosed`, Type: models.TypeSavings, Category: "Ahorro"},
	}
	// The broken rule is skipped; the system rule still applies.
	c := Classify("NETFLIX.COM", -44.90, custom)
	assert.Equal(t, "Suscripciones", c.Category)
}

func TestCompilePattern(t *testing.T) {
	re, ok := CompilePattern(`WONG|VIVANDA`)
	assert.True(t, ok)
	assert.True(t, re.MatchString("compra wong"))

	re, ok = CompilePattern(`[broken`)
	assert.False(t, ok)
	assert.Nil(t, re)
}
