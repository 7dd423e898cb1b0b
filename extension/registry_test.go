package extension

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

// testExtension is a minimal Extension implementation for testing.
type testExtension struct {
	name string
}

func (e testExtension) Name() string               { return e.name }
func (e testExtension) Commands() []*cobra.Command { return nil }

func TestRegister_PanicOnDuplicate(t *testing.T) {
	name := "test-duplicate-panic"
	Register(testExtension{name: name})

	assert.Panics(t, func() { Register(testExtension{name: name}) })
}

func TestRegistry_Order(t *testing.T) {
	Register(testExtension{name: "test-order-a"})
	Register(testExtension{name: "test-order-b"})

	names := Names()
	ia, ib := -1, -1
	for i, n := range names {
		switch n {
		case "test-order-a":
			ia = i
		case "test-order-b":
			ib = i
		}
	}
	assert.GreaterOrEqual(t, ia, 0)
	assert.Greater(t, ib, ia)
	assert.Len(t, All(), len(names))

	assert.Equal(t, "test-order-a", Get("test-order-a").Name())
	assert.Nil(t, Get("test-missing"))
}
