package cli

import (
	"context"

	"github.com/thenoetrevino/partners/internal/app"
	"github.com/thenoetrevino/partners/internal/config"
)

type appContextKey struct{}

// WithApp makes commands run against a prepared App instead of opening
// one from the user's config. Tests use it to inject an in-memory store.
func WithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, appContextKey{}, a)
}

// GetCLIFromContext returns a CLI for the App carried by ctx, or opens a
// new one.
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if a, ok := ctx.Value(appContextKey{}).(*app.App); ok && a != nil {
		c := &CLI{App: a, Config: config.Default()}
		c.resolve(ctx)
		return c, nil
	}
	return NewCLI(ctx)
}
