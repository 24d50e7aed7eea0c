package breedtips

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	require.Equal(t, "golden retriever", Key("  Golden   Retriever "))
	require.Equal(t, "pug", Key("PUG"))
	require.Equal(t, "", Key("   "))
}
