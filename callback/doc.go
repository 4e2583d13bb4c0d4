// Package callback contains helpers for building the per-element functions
// run by a job.Job:
//
// - Transform and Map: compute a new element value from the old one
// - Chain: apply several functions in order
// - When: apply a function only to elements matching a predicate
// - Fail and Nil: inject failures or do nothing, mostly for tests
// - WithLogging and WithStats: observe failures and throughput
//
// Every helper returns a buffer.Func, so helpers can be nested freely:
//
//	fn := callback.WithLogging(
//		callback.Chain(
//			callback.Map(normalize),
//			callback.When(isVisible, project),
//		),
//		logger, "project",
//	)
//	result, err := job.New(buffer.NewProtected(vertices), fn).RunSync(ctx, 8)
//
// The functions returned here hold no mutable state of their own and are safe
// to call from many workers at once, provided the functions they wrap are.
package callback
