package task

// switchTo saves the callee-saved registers into *current and loads them
// from *next, then returns — except that "returning" now resumes whatever
// ra next holds, which is either another in-flight switchTo call (for a
// previously suspended task) or trap.Return's address (for a task's very
// first run). This is the kernel's only concurrency primitive.
func switchTo(current, next *Context)
