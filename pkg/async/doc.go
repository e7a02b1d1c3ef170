// Package async provides a small generic Future type and helpers for running
// computations asynchronously, chaining continuations and waiting for their
// completion.
//
// A Future is obtained by calling Async, which starts the supplied function in
// its own goroutine and immediately returns a *Future, or by Resolve/Reject,
// which return futures that are already complete. Callers wait with Await,
// AwaitContext or AwaitWithTimeout, or poll the state with IsComplete.
//
// Continuations are attached with Then (success only) and Handle (success or
// failure). Both return a new Future and never block the caller.
//
// WaitAll collects results in declaration order and reports the first error in
// that order, not the first error in time.
//
// # Usage
//
//	import "github.com/dmitrymomot/schemakit/pkg/async"
//
//	f := async.Async(ctx, 42, func(_ context.Context, v int) (string, error) {
//	    return fmt.Sprintf("value is %d", v), nil
//	})
//	upper := async.Then(ctx, f, func(s string) (string, error) {
//	    return strings.ToUpper(s), nil
//	})
//	res, err := upper.AwaitContext(ctx)
//
// # Error Handling
//
// Errors produced by user callbacks are returned unchanged. AwaitContext
// returns ctx.Err() when the context is done first and AwaitWithTimeout
// returns ErrTimeout.
package async
