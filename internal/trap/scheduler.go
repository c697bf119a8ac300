package trap

// Scheduler is the slice of internal/task's TaskManager that trap dispatch
// needs. internal/task imports this package (for Context,
// NewAppInitContext and ReturnEntryAddr), so trap calling straight into
// task would form an import cycle; registering the scheduler through this interface at boot
// (SetScheduler) breaks it the way Go idiomatically inverts a dependency
// that a single-crate implementation (the original) simply didn't have to
// name.
type Scheduler interface {
	// CurrentTrapContext returns the running task's Context page.
	CurrentTrapContext() *Context
	// CurrentUserToken returns the running task's satp value.
	CurrentUserToken() uint64
	// SuspendCurrentAndRunNext marks the running task Ready and switches
	// to the next Ready task in round-robin order.
	SuspendCurrentAndRunNext()
	// ExitCurrentAndRunNext marks the running task Exited and switches
	// to the next Ready task, or shuts the machine down if none remain.
	ExitCurrentAndRunNext()
}

var scheduler Scheduler

// SetScheduler registers the task manager trap dispatch calls back into.
// Must be called once during boot before the first trap can occur.
func SetScheduler(s Scheduler) { scheduler = s }
