package cmd

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveVersion(t *testing.T) {
	installed := &debug.BuildInfo{Main: debug.Module{Path: "github.com/alexchase32/lessbuilder", Version: "v0.4.0"}}
	local := &debug.BuildInfo{Main: debug.Module{Path: "github.com/alexchase32/lessbuilder", Version: "(devel)"}}

	assert.Equal(t, "v1.2.3", resolveVersion("v1.2.3", installed, true), "ldflags win")
	assert.Equal(t, "v0.4.0", resolveVersion("(devel)", installed, true))
	assert.Equal(t, "(devel)", resolveVersion("(devel)", local, true))
	assert.Equal(t, "(devel)", resolveVersion("(devel)", nil, false))
}
