package catalog

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDefault(t *testing.T) {
	c := Default()
	require.Equal(t, 8, c.Len())

	e, err := c.Resolve("Dock")
	require.NoError(t, err)
	assert.Equal(t, "assets/Dock.glb", e.Path)
	assert.Equal(t, mgl32.Vec3{-8, 0, -7}, e.Placement)
}

func TestResolveUnknown(t *testing.T) {
	c := Default()

	for _, name := range []string{"SmallHouse", "dock", ""} {
		_, err := c.Resolve(name)
		require.Error(t, err, name)
		assert.True(t, errors.Is(err, ErrNotFound))

		var nf *NotFoundError
		require.True(t, errors.As(err, &nf))
		assert.Equal(t, name, nf.Name)
	}
}

func TestNewValidates(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
	}{
		{"empty name", []Entry{{Path: "a.glb"}}},
		{"empty path", []Entry{{Name: "A"}}},
		{"duplicate", []Entry{{Name: "A", Path: "a.glb"}, {Name: "A", Path: "b.glb"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.entries)
			assert.Error(t, err)
		})
	}
}

func TestNamesSorted(t *testing.T) {
	c, err := New([]Entry{{Name: "B", Path: "b"}, {Name: "A", Path: "a"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, c.Names())
}
