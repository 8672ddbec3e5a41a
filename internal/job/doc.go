// Package job implements the in-process background job dispatch subsystem.
// It provides bounded per-lane queues, a single-consumer processor per lane,
// and producer helpers that let request handlers defer slow side-effecting
// work (notification fan-out, outbound email) without blocking the response
// and without borrowing request-scoped resources. Delivery is best-effort
// and at-most-once: failed jobs are logged and discarded, never retried.
package job
