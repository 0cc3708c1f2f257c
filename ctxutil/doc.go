// Package ctxutil carries request scoped values, currently the trace id,
// through context.Context.
package ctxutil
