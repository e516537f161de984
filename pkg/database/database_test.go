package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldMigrate(t *testing.T) {
	assert.True(t, ShouldMigrate("debug", false))
	assert.True(t, ShouldMigrate("test", false))
	assert.True(t, ShouldMigrate("release", true))
	assert.False(t, ShouldMigrate("release", false))
}
