package services

import (
	"context"
	"testing"

	"github.com/FinanzasVH/finanzas-api/models"

	"github.com/stretchr/testify/assert"
)

func TestTransferCreate_RejectsSameAccount(t *testing.T) {
	svc := NewTransferService(nil)
	_, err := svc.Create(context.Background(), "user-1", models.CreateTransferRequest{
		SourceAccountID: "acc-1",
		DestAccountID:   "acc-1",
		Amount:          100,
		TransferDate:    "2025-11-03",
	})
	assert.ErrorIs(t, err, ErrSameAccount)
}

func TestTransferCreate_RejectsNonPositiveAmount(t *testing.T) {
	svc := NewTransferService(nil)
	for _, amount := range []float64{0, -50} {
		_, err := svc.Create(context.Background(), "user-1", models.CreateTransferRequest{
			SourceAccountID: "acc-1",
			DestAccountID:   "acc-2",
			Amount:          amount,
			TransferDate:    "2025-11-03",
		})
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}
}
