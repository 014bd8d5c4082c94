package workers

// Worker is a background process started once at application boot.
//
// Run must not block the caller: long-running work is expected to happen in
// a goroutine owned by the worker.
type Worker interface {
	Run()
}
