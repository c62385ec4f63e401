package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseText_SingleAmountLines(t *testing.T) {
	raw := `ESTADO DE CUENTA NOVIEMBRE
31/10/2025  *COLEGIO GRACIAS JESUS         -440.00
01/11/2025  NETFLIX.COM                    -44.90
SALDO FINAL 1,234.56`

	entries := ParseText(raw, "")
	require.Len(t, entries, 2)

	assert.Equal(t, "2025-10-31", entries[0].Date)
	assert.Equal(t, "2025-10", entries[0].Period)
	assert.Equal(t, "*COLEGIO GRACIAS JESUS", entries[0].Description)
	assert.Equal(t, -440.00, entries[0].Amount)

	assert.Equal(t, "2025-11-01", entries[1].Date)
	assert.Equal(t, "NETFLIX.COM", entries[1].Description)
	assert.Equal(t, -44.90, entries[1].Amount)
}

func TestParseText_TwoAmountColumns(t *testing.T) {
	raw := `05/11/2025 PAGO SERVICIO LUZ 120.50 0.00
06/11/2025 DEPOSITO EFECTIVO 0.00 850.00`

	entries := ParseText(raw, "")
	require.Len(t, entries, 2)

	// debit column, credit is zero
	assert.Equal(t, -120.50, entries[0].Amount)
	// credit column wins when positive
	assert.Equal(t, 850.00, entries[1].Amount)
}

func TestParseText_DateFormats(t *testing.T) {
	tests := []struct {
		name string
		line string
		date string
	}{
		{"day first full year", "31/10/2025 COMPRA WONG -50.00", "2025-10-31"},
		{"day first short year", "31-10-25 COMPRA WONG -50.00", "2025-10-31"},
		{"year first", "2025-10-31 COMPRA WONG -50.00", "2025-10-31"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := ParseText(tt.line, "")
			require.Len(t, entries, 1)
			assert.Equal(t, tt.date, entries[0].Date)
		})
	}
}

func TestParseText_BankSignCorrection(t *testing.T) {
	raw := `01/11/2025 COMPRA TOTTUS 89.90
02/11/2025 ABONO SUELDO NOVIEMBRE 3000.00`

	entries := ParseText(raw, "BBVA")
	require.Len(t, entries, 2)

	// unsigned amounts default to debits for this bank
	assert.Equal(t, -89.90, entries[0].Amount)
	// income keywords keep the positive sign
	assert.Equal(t, 3000.00, entries[1].Amount)
}

func TestParseText_UnknownBankKeepsSign(t *testing.T) {
	entries := ParseText("01/11/2025 COMPRA TOTTUS 89.90", "OTRO")
	require.Len(t, entries, 1)
	assert.Equal(t, 89.90, entries[0].Amount)
}

func TestParseText_SkipsNoise(t *testing.T) {
	raw := `ESTADO DE CUENTA
01/11/2025 AB 100.00
02/11/2025 COMPRA VALIDA 0.00
sin fecha ni monto`

	// short description, zero amount and undated lines all drop out
	entries := ParseText(raw, "")
	assert.Empty(t, entries)
}

func TestParseTable_DebitCreditColumns(t *testing.T) {
	raw := `Fecha;Descripcion;Cargo;Abono
01/11/2025;NETFLIX;45.90;
02/11/2025;SUELDO;;3000.00`

	entries := ParseTable(raw, "")
	require.Len(t, entries, 2)

	assert.Equal(t, "2025-11-01", entries[0].Date)
	assert.Equal(t, "NETFLIX", entries[0].Description)
	assert.Equal(t, -45.90, entries[0].Amount)

	assert.Equal(t, "2025-11-02", entries[1].Date)
	assert.Equal(t, 3000.00, entries[1].Amount)
}

func TestParseTable_SingleAmountColumn(t *testing.T) {
	raw := `Fecha,Concepto,Monto
2025-11-03,COMPRA PLAZA VEA,-150.00
04/11/25,"DEPOSITO EFECTIVO",200.00`

	entries := ParseTable(raw, "")
	require.Len(t, entries, 2)
	assert.Equal(t, "2025-11-03", entries[0].Date)
	assert.Equal(t, -150.00, entries[0].Amount)
	assert.Equal(t, "2025-11-04", entries[1].Date)
}

func TestParseTable_KeepsShortMerchantNames(t *testing.T) {
	raw := `Fecha;Descripcion;Monto
01/11/2025;IO;-45.90
02/11/2025;;-10.00`

	entries := ParseTable(raw, "")
	require.Len(t, entries, 1)
	assert.Equal(t, "IO", entries[0].Description)
	assert.Equal(t, -45.90, entries[0].Amount)
}

func TestParseTable_HeaderOnly(t *testing.T) {
	assert.Empty(t, ParseTable("Fecha;Descripcion;Monto", ""))
	assert.Empty(t, ParseTable("", ""))
}

func TestParseNumber(t *testing.T) {
	assert.Equal(t, 1234.56, parseNumber("1,234.56"))
	assert.Equal(t, -440.0, parseNumber("-440.00"))
	assert.Equal(t, 0.0, parseNumber(""))
	assert.Equal(t, 0.0, parseNumber("abc"))
}

func TestNormalizeDate(t *testing.T) {
	assert.Equal(t, "2025-11-01", normalizeDate("01/11/2025"))
	assert.Equal(t, "2025-11-01", normalizeDate("01-11-25"))
	assert.Equal(t, "2025-11-01", normalizeDate("2025-11-01"))
	assert.Equal(t, "", normalizeDate("noviembre"))
	assert.Equal(t, "", normalizeDate(""))
}
