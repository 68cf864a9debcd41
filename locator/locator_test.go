package locator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAgent struct{ name string }

func TestLocator_ResolveInstance(t *testing.T) {
	reg := NewRegistry()
	instance := &stubAgent{name: "biomni"}
	reg.RegisterModule("biomni.agent", Module{"agent": instance})

	loc := New(func(o *Options) { o.Registry = reg })

	got, err := loc.Resolve("biomni.agent:agent")
	require.NoError(t, err)
	assert.Same(t, instance, got)

	info := loc.Info()
	assert.Equal(t, "biomni.agent", info.Module)
	assert.Equal(t, "agent", info.Attribute)
}

func TestLocator_ConstructorInstantiatedOnce(t *testing.T) {
	reg := NewRegistry()

	constructed := 0
	reg.Register("biomni", "BiomniAgent", Constructor(func() (any, error) {
		constructed++
		return &stubAgent{name: "constructed"}, nil
	}))

	loc := New(func(o *Options) { o.Registry = reg })

	first, err := loc.Resolve("biomni:BiomniAgent")
	require.NoError(t, err)

	second, err := loc.Resolve("biomni:BiomniAgent")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, constructed)
}

func TestLocator_PlainConstructorForms(t *testing.T) {
	reg := NewRegistry()
	reg.Register("mod", "FromFunc", func() any { return &stubAgent{name: "plain"} })
	reg.Register("mod", "FromErrFunc", func() (any, error) { return &stubAgent{name: "witherr"}, nil })

	loc := New(func(o *Options) { o.Registry = reg })

	got, err := loc.Resolve("mod:FromFunc")
	require.NoError(t, err)
	assert.Equal(t, "plain", got.(*stubAgent).name)

	loc.Reset()

	got, err = loc.Resolve("mod:FromErrFunc")
	require.NoError(t, err)
	assert.Equal(t, "witherr", got.(*stubAgent).name)
}

func TestLocator_InvalidSpecifier(t *testing.T) {
	loc := New(func(o *Options) { o.Registry = NewRegistry() })

	for _, spec := range []string{"noseparator", ":agent", "biomni:", ""} {
		_, err := loc.Resolve(spec)
		assert.ErrorIs(t, err, ErrInvalidSpecifier, "specifier %q", spec)
	}
}

func TestLocator_ModuleVsAttributeNotFound(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterModule("biomni", Module{"agent": &stubAgent{}})

	loc := New(func(o *Options) { o.Registry = reg })

	_, err := loc.Resolve("missing:agent")
	assert.ErrorIs(t, err, ErrModuleNotFound)
	assert.NotErrorIs(t, err, ErrAttributeNotFound)

	_, err = loc.Resolve("biomni:missing")
	assert.ErrorIs(t, err, ErrAttributeNotFound)
	assert.NotErrorIs(t, err, ErrModuleNotFound)
}

func TestLocator_Reset(t *testing.T) {
	reg := NewRegistry()

	constructed := 0
	reg.Register("biomni", "BiomniAgent", Constructor(func() (any, error) {
		constructed++
		return &stubAgent{}, nil
	}))

	loc := New(func(o *Options) { o.Registry = reg })

	first, err := loc.Resolve("biomni:BiomniAgent")
	require.NoError(t, err)

	loc.Reset()
	assert.Zero(t, loc.Info())

	second, err := loc.Resolve("biomni:BiomniAgent")
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, 2, constructed)
}

func TestLocator_FailedResolutionIsRetried(t *testing.T) {
	reg := NewRegistry()
	loc := New(func(o *Options) { o.Registry = reg })

	_, err := loc.Resolve("biomni:agent")
	require.ErrorIs(t, err, ErrModuleNotFound)

	// Fix the configuration; no Reset needed because failures cache nothing.
	reg.RegisterModule("biomni", Module{"agent": &stubAgent{}})

	got, err := loc.Resolve("biomni:agent")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestLocator_AddSearchPathIdempotent(t *testing.T) {
	loc := New(func(o *Options) { o.Registry = NewRegistry() })

	loc.AddSearchPath("/opt/biomni/plugins")
	loc.AddSearchPath("/opt/biomni/plugins")
	assert.Equal(t, []string{"/opt/biomni/plugins"}, loc.SearchPaths())

	loc.AddSearchPath("")
	assert.Len(t, loc.SearchPaths(), 1)

	// New entries are prepended so they win over earlier ones.
	loc.AddSearchPath("/usr/local/biomni")
	assert.Equal(t, []string{"/usr/local/biomni", "/opt/biomni/plugins"}, loc.SearchPaths())
}

func TestRegistry_Lookup(t *testing.T) {
	reg := NewRegistry()
	reg.Register("mod", "a", 1)

	_, moduleFound, attributeFound := reg.Lookup("other", "a")
	assert.False(t, moduleFound)
	assert.False(t, attributeFound)

	_, moduleFound, attributeFound = reg.Lookup("mod", "b")
	assert.True(t, moduleFound)
	assert.False(t, attributeFound)

	v, moduleFound, attributeFound := reg.Lookup("mod", "a")
	assert.True(t, moduleFound)
	assert.True(t, attributeFound)
	assert.Equal(t, 1, v)
}
