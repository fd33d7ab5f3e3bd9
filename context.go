package trcat

import "context"

type catalogCtxKey struct{}

// NewContext returns a copy of ctx carrying c. Lookups through TrCtx use
// it instead of the translator's current catalog, so one request keeps
// the same language even if the translator switches meanwhile.
func NewContext(ctx context.Context, c *Catalog) context.Context {
	return context.WithValue(ctx, catalogCtxKey{}, c)
}

// FromContext returns the catalog stored by NewContext.
func FromContext(ctx context.Context) (*Catalog, bool) {
	if ctx == nil {
		return nil, false
	}
	c, ok := ctx.Value(catalogCtxKey{}).(*Catalog)
	return c, ok && c != nil
}
