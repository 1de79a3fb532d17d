package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JoaoOliveiraaa/minishop/internal/models"
)

func TestValidPaymentTransition(t *testing.T) {

	allowed := [][2]string{
		{models.PaymentStatusPending, models.PaymentStatusAwaitingConfirmation},
		{models.PaymentStatusPending, models.PaymentStatusAwaitingTransfer},
		{models.PaymentStatusPending, models.PaymentStatusCancelled},
		{models.PaymentStatusAwaitingConfirmation, models.PaymentStatusPaid},
		{models.PaymentStatusAwaitingConfirmation, models.PaymentStatusFailed},
		{models.PaymentStatusAwaitingTransfer, models.PaymentStatusPaid},
		{models.PaymentStatusAwaitingTransfer, models.PaymentStatusCancelled},
	}
	for _, pair := range allowed {
		assert.True(t, models.ValidPaymentTransition(pair[0], pair[1]), "%s -> %s should be allowed", pair[0], pair[1])
	}

	denied := [][2]string{
		{models.PaymentStatusPending, models.PaymentStatusPaid}, // must pass through an awaiting state
		{models.PaymentStatusPaid, models.PaymentStatusCancelled},
		{models.PaymentStatusPaid, models.PaymentStatusPending},
		{models.PaymentStatusFailed, models.PaymentStatusPaid},
		{models.PaymentStatusCancelled, models.PaymentStatusPending},
		{models.PaymentStatusAwaitingConfirmation, models.PaymentStatusAwaitingTransfer},
		{"unknown", models.PaymentStatusPaid},
	}
	for _, pair := range denied {
		assert.False(t, models.ValidPaymentTransition(pair[0], pair[1]), "%s -> %s should be denied", pair[0], pair[1])
	}
}
