package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrettyFrequency(t *testing.T) {
	assert.Equal(t, "500.00 Hz", prettyFrequency(500))
	assert.Equal(t, "1.50 KHz", prettyFrequency(1500))
	assert.Equal(t, "2.00 MHz", prettyFrequency(2e6))
	assert.Equal(t, "0.00 Hz", prettyFrequency(0))
}
