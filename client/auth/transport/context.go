package transport

import (
	"context"

	"github.com/viant/scy/auth/flow"
)

type (
	contextScopeKey string
)

const (
	contextFlowOptionKey contextScopeKey = "authFlowOptions"
)

func (r *RoundTripper) flowOptions(ctx context.Context) []flow.Option {
	options := append([]flow.Option{}, r.authFlowOptions...)
	if value := ctx.Value(contextFlowOptionKey); value != nil {
		if extra, ok := value.([]flow.Option); ok {
			options = append(options, extra...)
		}
	}
	return options
}
