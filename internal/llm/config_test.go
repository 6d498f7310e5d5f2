package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, "gemini-2.5-flash", config.Model)
	assert.Positive(t, config.Timeout)
}

func TestWithModel(t *testing.T) {
	config := DefaultConfig()

	custom := config.WithModel("gemini-2.5-pro")
	assert.Equal(t, "gemini-2.5-pro", custom.Model)
	assert.Equal(t, "gemini-2.5-flash", config.Model, "original config unchanged")

	same := config.WithModel("")
	assert.Equal(t, config.Model, same.Model, "empty model keeps default")
}
