package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	info := Get()
	assert.Equal(t, Version, info.BuildTag)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Contains(t, info.String(), "Build Tag:    "+Version)
}

func TestUserAgent(t *testing.T) {
	orig := Version
	Version = "v1.2.3"
	defer func() { Version = orig }()

	assert.Equal(t, "hyperspell-mcp/v1.2.3", UserAgent())
	assert.Equal(t, "v1.2.3", Short())
}
