package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckPasswordPolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
		details  int
	}{
		{name: "valid minimal", password: "Abcde1", details: 0},
		{name: "valid with symbols", password: "P@ssw0rd!", details: 0},
		{name: "too short only", password: "Ab1", details: 1},
		{name: "no digit", password: "Abcdef", details: 1},
		{name: "no uppercase", password: "abcde1", details: 1},
		{name: "no lowercase", password: "ABCDE1", details: 1},
		{name: "empty", password: "", details: 4},
		{name: "short and digits only", password: "123", details: 3},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Len(t, CheckPasswordPolicy(tt.password), tt.details)
		})
	}
}

func TestIsValidEcoleCode(t *testing.T) {
	t.Parallel()

	valid := []string{"DEMO", "ECOLE_2025", "A", "X1_Y2"}
	for _, code := range valid {
		assert.True(t, IsValidEcoleCode(code), code)
	}

	invalid := []string{"", "demo", "HAS SPACE", "WITH-DASH", "ÉCOLE", "a_b"}
	for _, code := range invalid {
		assert.False(t, IsValidEcoleCode(code), code)
	}
}
