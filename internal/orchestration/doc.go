// Package orchestration coordinates benchmark runs: it partitions the
// workload, starts one goroutine per range, joins all of them and reads the
// merged result. It decouples the run lifecycle from presentation via the
// Observer, ResultPresenter and ErrorHandler interfaces.
//
// A run moves through IDLE → PARTITIONED → RUNNING → JOINED → DONE. The
// shared result is created before the first worker starts and is read only
// after every worker has been joined. A run with a failed worker stops at
// JOINED and returns a WorkerFailureError instead of a value.
package orchestration
