package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasswordConfig(t *testing.T) {
	tests := []struct {
		name    string
		cost    string
		pepper  string
		want    int
		wantErr bool
	}{
		{name: "defaults", want: 12},
		{name: "explicit cost", cost: "10", want: 10},
		{name: "max cost", cost: "14", want: 14},
		{name: "cost too low", cost: "9", wantErr: true},
		{name: "cost too high", cost: "15", wantErr: true},
		{name: "cost not a number", cost: "twelve", wantErr: true},
		{name: "pepper carried through", cost: "11", pepper: "sesame", want: 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BCRYPT_COST", tt.cost)
			t.Setenv("PASSWORD_PEPPER", tt.pepper)

			cfg, err := NewPasswordConfig()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.BcryptCost)
			assert.Equal(t, tt.pepper, cfg.Pepper)
		})
	}
}

func TestPasswordHashAndVerify(t *testing.T) {
	// Lowest allowed cost keeps the test fast.
	cfg := &PasswordConfig{BcryptCost: 10}

	hash, err := cfg.HashPassword("chai-and-samosa")
	require.NoError(t, err)
	assert.NotEqual(t, "chai-and-samosa", hash)

	assert.True(t, cfg.VerifyPassword("chai-and-samosa", hash))
	assert.False(t, cfg.VerifyPassword("chai-and-samosas", hash))
	assert.False(t, cfg.VerifyPassword("", hash))
}

func TestPasswordPepperAffectsVerification(t *testing.T) {
	withPepper := &PasswordConfig{BcryptCost: 10, Pepper: "secret-pepper"}
	withoutPepper := &PasswordConfig{BcryptCost: 10}

	hash, err := withPepper.HashPassword("owner-password")
	require.NoError(t, err)

	// A hash minted with a pepper only verifies under the same pepper.
	assert.True(t, withPepper.VerifyPassword("owner-password", hash))
	assert.False(t, withoutPepper.VerifyPassword("owner-password", hash))
}

func TestHashPasswordProducesUniqueSalts(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10}

	first, err := cfg.HashPassword("same-password")
	require.NoError(t, err)
	second, err := cfg.HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, cfg.VerifyPassword("same-password", first))
	assert.True(t, cfg.VerifyPassword("same-password", second))
}
