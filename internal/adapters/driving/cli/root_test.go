package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaths(t *testing.T) {
	config, db := Paths([]string{"--config", "/tmp/conf", "--db", "/tmp/data", "status"})
	assert.Equal(t, "/tmp/conf", config)
	assert.Equal(t, "/tmp/data", db)
}

func TestPaths_Defaults(t *testing.T) {
	config, db := Paths([]string{"status"})
	assert.Empty(t, config)
	assert.Empty(t, db)
}

func TestPaths_IgnoresUnknownFlags(t *testing.T) {
	config, db := Paths([]string{"--no-such-flag", "--db", "/tmp/data"})
	assert.Empty(t, config)
	assert.Equal(t, "/tmp/data", db)
}
