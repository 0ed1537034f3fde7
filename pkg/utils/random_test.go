package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGenerateVisitorID(t *testing.T) {
	id := GenerateVisitorID()
	_, err := uuid.Parse(id)
	assert.NoError(t, err)

	other := GenerateVisitorID()
	assert.NotEqual(t, id, other)
}
