package pages

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJoinURL(t *testing.T) {
	for _, tc := range []struct{ base, path, expected string }{
		{"https://www.saucedemo.com", "", "https://www.saucedemo.com"},
		{"https://www.saucedemo.com/", "", "https://www.saucedemo.com"},
		{"https://www.saucedemo.com/", "/inventory.html", "https://www.saucedemo.com/inventory.html"},
		{"https://demoqa.com", "elements", "https://demoqa.com/elements"},
		{"https://demoqa.com//", "//slider", "https://demoqa.com/slider"},
	} {
		assert.Equal(t, tc.expected, JoinURL(tc.base, tc.path))
	}
}

func TestURLPattern(t *testing.T) {
	assert.Equal(t, "**inventory.html**", URLPattern("inventory.html"))
}

func TestWaitTimeoutDefaults(t *testing.T) {
	n := NewNavigator(nil, 0)
	assert.Equal(t, 5000.0, n.millis(0))
	assert.Equal(t, 250.0, n.millis(250*time.Millisecond))

	n = NewNavigator(nil, 2*time.Second)
	assert.Equal(t, 2000.0, n.millis(0))
}
