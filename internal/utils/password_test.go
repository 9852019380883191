package utils_test

import (
	"testing"

	"github.com/SscSPs/familienkasse/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := utils.HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, utils.CheckPasswordHash("correct horse", hash))
	assert.False(t, utils.CheckPasswordHash("wrong horse", hash))
}

func TestCheckPasswordHash_EmptyHash(t *testing.T) {
	assert.False(t, utils.CheckPasswordHash("anything", ""))
}
