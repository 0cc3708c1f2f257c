package ctxutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnsureTraceID(t *testing.T) {
	ctx, id := EnsureTraceID(context.Background())
	assert.NotEmpty(t, id)
	assert.Equal(t, id, GetTraceID(ctx))

	same, again := EnsureTraceID(ctx)
	assert.Equal(t, id, again)
	assert.Equal(t, ctx, same)
}

func TestGetTraceID_Nil(t *testing.T) {
	//nolint:staticcheck
	assert.Empty(t, GetTraceID(nil))
	assert.Equal(t, "abc", GetTraceID(SetTraceID(nil, "abc")))
}
