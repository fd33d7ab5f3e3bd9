package test

import (
	"context"
	"sync"
	"time"
)

// MockContext wraps a context and counts the values looked up through it.
type MockContext struct {
	Ctx context.Context

	mu      sync.Mutex
	lookups int
}

func (ctx *MockContext) Context() context.Context {
	return ctx
}

func (ctx *MockContext) SetValue(key interface{}, value interface{}) {
	ctx.Ctx = context.WithValue(ctx.Ctx, key, value)
}

func (ctx *MockContext) Lookups() int {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	return ctx.lookups
}

func (ctx *MockContext) Deadline() (time.Time, bool) {
	return ctx.Ctx.Deadline()
}

func (ctx *MockContext) Done() <-chan struct{} {
	return ctx.Ctx.Done()
}

func (ctx *MockContext) Err() error {
	return ctx.Ctx.Err()
}

func (ctx *MockContext) Value(key interface{}) interface{} {
	ctx.mu.Lock()
	ctx.lookups++
	ctx.mu.Unlock()
	return ctx.Ctx.Value(key)
}
