package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSerialPrefix(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"Arduino", "ARD"},
		{"Raspberry Pi", "RAS"},
		{"resistor", "RES"},
		{"Pi", "PIX"},
		{"a b", "ABX"},
		{"", "XXX"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SerialPrefix(tt.name))
		})
	}
}

func TestNextSerials(t *testing.T) {
	t.Run("continues after highest suffix", func(t *testing.T) {
		serials := NextSerials("ARD", []string{"ARD001", "ARD003"}, 2)
		assert.Equal(t, []string{"ARD004", "ARD005"}, serials)
	})

	t.Run("starts at one for empty set", func(t *testing.T) {
		serials := NextSerials("ARD", nil, 3)
		assert.Equal(t, []string{"ARD001", "ARD002", "ARD003"}, serials)
	})

	t.Run("ignores foreign prefixes and unparseable suffixes", func(t *testing.T) {
		serials := NextSerials("ARD", []string{"RPI009", "ARDXYZ"}, 1)
		assert.Equal(t, []string{"ARD001"}, serials)
	})

	t.Run("grows past three digits without truncating", func(t *testing.T) {
		serials := NextSerials("ARD", []string{"ARD999"}, 2)
		assert.Equal(t, []string{"ARD1000", "ARD1001"}, serials)
	})

	t.Run("zero count yields nothing", func(t *testing.T) {
		assert.Empty(t, NextSerials("ARD", []string{"ARD001"}, 0))
	})
}
