package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInvocationContext(t *testing.T) {
	ctx := context.Background()
	info := AgentInfo{Module: "biomni", Attribute: "agent"}

	ic := NewInvocationContext(ctx, info, nil)

	assert.Equal(t, ctx, ic.Context())
	assert.Equal(t, info, ic.AgentInfo())
	assert.NotNil(t, ic.Logger(), "nil logger defaults to NoOpLogger")
	require.NotEmpty(t, ic.InvocationID())

	other := NewInvocationContext(ctx, info, nil)
	assert.NotEqual(t, ic.InvocationID(), other.InvocationID())
}

func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for range 100 {
		id := NewID()
		_, dup := seen[id]
		assert.False(t, dup)
		seen[id] = struct{}{}
	}
}
