package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionIsLatestFile(t *testing.T) {
	latest, err := Latest()
	require.NoError(t, err)
	assert.Equal(t, Version, latest)
}
