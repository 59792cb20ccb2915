package qr_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-panel/internal/models"
	"restaurant-panel/internal/qr"
)

func TestGenerateEncryptedQR(t *testing.T) {
	qrGen := qr.NewQRGenerator("test-secret-key")

	reservation := models.Reservation{
		ID:       "res-1",
		UID:      "user-1",
		Data:     "8/27/2025",
		Hour:     "7:00:00PM",
		Assentos: 4,
	}

	qrBytes, err := qrGen.GenerateEncryptedQR(reservation)
	require.NoError(t, err)
	assert.NotEmpty(t, qrBytes)

	// PNG magic bytes
	assert.True(t, bytes.HasPrefix(qrBytes, []byte{0x89, 'P', 'N', 'G'}))
}

func TestGenerateEncryptedQRSecretLength(t *testing.T) {
	// Any secret length works since the key is hashed to 32 bytes
	for _, secret := range []string{"", "s", "a-much-longer-secret-than-a-block-size-allows"} {
		qrGen := qr.NewQRGenerator(secret)
		_, err := qrGen.GenerateEncryptedQR(models.Reservation{ID: "res-1", Data: "8/27/2025", Hour: "7:00:00PM"})
		assert.NoError(t, err)
	}
}
