package saucedemo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemButtonSelector(t *testing.T) {
	assert.Equal(t, `.inventory_item:has-text("Sauce Labs Backpack") button`, itemButton("Sauce Labs Backpack"))
}

func TestParseBadge(t *testing.T) {
	n, err := parseBadge(" 3\n")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = parseBadge("many")
	assert.Error(t, err)
}
