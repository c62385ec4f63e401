package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func withProduction(t *testing.T, fn func()) {
	t.Helper()
	prev := IsProduction
	IsProduction = true
	defer func() { IsProduction = prev }()
	fn()
}

func TestMaskString_Production(t *testing.T) {
	withProduction(t, func() {
		assert.Equal(t, "Pago S/ *** en WONG", MaskString("Pago S/ 1,234.56 en WONG"))
		assert.Equal(t, "cargo -***", MaskString("cargo -59.90"))
		assert.Equal(t, "cuenta **********", MaskString("cuenta 00112345678901234567"))
		assert.Equal(t, "tarjeta ****-****-****-****", MaskString("tarjeta 4111 1111 1111 1111"))

		masked := MaskString("session 3f2504e0-4f89-11d3-9a0c-0305e82c3301")
		assert.Equal(t, "session 3f2504e0...", masked)
	})
}

func TestMaskString_Development(t *testing.T) {
	prev := IsProduction
	IsProduction = false
	defer func() { IsProduction = prev }()

	in := "Pago S/ 1,234.56 en WONG"
	assert.Equal(t, in, MaskString(in))
}

func TestMaskHelpers(t *testing.T) {
	withProduction(t, func() {
		assert.Equal(t, "***", MaskAmount(-59.90))
		assert.Equal(t, "NETFLI...", MaskDescription("NETFLIX.COM 888-1234"))
		assert.Equal(t, "***", MaskDescription("WONG"))
		assert.Equal(t, "3f2504e0...", MaskID("3f2504e0-4f89-11d3-9a0c-0305e82c3301"))
		assert.Equal(t, "***", MaskID("short"))
	})
}
