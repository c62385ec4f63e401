package services

import (
	"testing"

	"github.com/FinanzasVH/finanzas-api/models"

	"github.com/stretchr/testify/assert"
)

func existingTx(date, description string, amount float64) models.Transaction {
	return models.Transaction{Date: date, Description: description, Amount: amount}
}

func rawEntry(date, description string, amount float64) models.RawEntry {
	return models.RawEntry{Date: date, Description: description, Amount: amount}
}

func TestIsDuplicate_SameDaySimilarDescription(t *testing.T) {
	existing := []models.Transaction{
		existingTx("2025-11-03", "MOVISTAR CUENTA FINANCIERA", -59.90),
	}
	assert.True(t, IsDuplicate(rawEntry("2025-11-03", "MOVISTAR", -59.90), existing))
}

func TestIsDuplicate_OneDayApart(t *testing.T) {
	existing := []models.Transaction{
		existingTx("2025-11-03", "NETFLIX.COM", -44.90),
	}
	assert.True(t, IsDuplicate(rawEntry("2025-11-04", "NETFLIX.COM", -44.90), existing))
	assert.True(t, IsDuplicate(rawEntry("2025-11-02", "NETFLIX.COM", -44.90), existing))
}

func TestIsDuplicate_DateTooFar(t *testing.T) {
	existing := []models.Transaction{
		existingTx("2025-11-03", "NETFLIX.COM", -44.90),
	}
	assert.False(t, IsDuplicate(rawEntry("2025-11-10", "NETFLIX.COM", -44.90), existing))
}

func TestIsDuplicate_AmountDiffers(t *testing.T) {
	existing := []models.Transaction{
		existingTx("2025-11-03", "NETFLIX.COM", -44.90),
	}
	assert.False(t, IsDuplicate(rawEntry("2025-11-03", "NETFLIX.COM", -44.91), existing))
}

func TestIsDuplicate_DescriptionUnrelated(t *testing.T) {
	existing := []models.Transaction{
		existingTx("2025-11-03", "ZZZZZZZZZZ", -59.90),
	}
	assert.False(t, IsDuplicate(rawEntry("2025-11-03", "MOVISTAR", -59.90), existing))
}

func TestIsDuplicate_UnparseableDateNeverMatches(t *testing.T) {
	existing := []models.Transaction{
		existingTx("not-a-date", "NETFLIX.COM", -44.90),
	}
	assert.False(t, IsDuplicate(rawEntry("2025-11-03", "NETFLIX.COM", -44.90), existing))
}

func TestMarkDuplicates(t *testing.T) {
	existing := []models.Transaction{
		existingTx("2025-11-03", "MOVISTAR CUENTA FINANCIERA", -59.90),
	}
	items := []models.ReviewItem{
		{ClassifiedEntry: models.ClassifiedEntry{RawEntry: rawEntry("2025-11-03", "MOVISTAR", -59.90)}},
		{ClassifiedEntry: models.ClassifiedEntry{RawEntry: rawEntry("2025-11-03", "COMPRA WONG", -120.00)}},
	}

	MarkDuplicates(items, existing)

	assert.True(t, items[0].IsDuplicateSuspect)
	assert.False(t, items[1].IsDuplicateSuspect)
}
