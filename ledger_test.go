package hederalegacy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBalanceString(t *testing.T) {
	balance := &Balance{Hbars: HbarFrom(100)}
	assert.Equal(t, "100 ℏ", balance.String())

	balance.Tokens = map[string]uint64{
		"0.0.49102025": 1500,
		"0.0.49102000": 2,
		"0.0.7":        0,
	}
	assert.Equal(t, "100 ℏ, tokens: {0.0.49102000: 2, 0.0.49102025: 1500}", balance.String())
	assert.Equal(t, uint64(1500), balance.Token("0.0.49102025"))
}
