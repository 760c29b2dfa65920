package quality

import "context"

// CheckExecutor is the contract an external query engine satisfies: it
// accepts a compiled rule's SQL template plus parameter map and reports the
// outcome. canonmeta ships no implementation; execution, retries, and
// timeouts are the engine's concern.
type CheckExecutor interface {
	Execute(ctx context.Context, compiled *CompiledRule) (CheckResult, error)
}
