package fonts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBuiltin(t *testing.T) {
	for _, name := range []string{"goregular", "builtin:gobold", "built-in:GoMono"} {
		data, err := Load(name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, data, name)
	}
	_, err := Load("builtin:comic-sans")
	assert.Error(t, err)
	assert.Contains(t, Names(), Default)
}
