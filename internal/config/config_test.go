package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGormConfig_TranslatesDriverErrors(t *testing.T) {
	for _, env := range []string{"development", "production"} {
		cfg := GormConfig(&Config{Environment: env})

		assert.True(t, cfg.TranslateError, env)
		assert.NotNil(t, cfg.Logger, env)
	}
}
