package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInviteCode_Format(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := GenerateInviteCode()
		require.NoError(t, err)
		assert.Regexp(t, `^[A-Z0-9]{8}$`, code)
	}
}

func TestGenerateInviteCode_Distinct(t *testing.T) {
	first, err := GenerateInviteCode()
	require.NoError(t, err)
	second, err := GenerateInviteCode()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
