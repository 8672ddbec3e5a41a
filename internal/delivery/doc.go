// Package delivery contains the concrete collaborators the job
// subsystem is wired with in production: the per-job resource scope and
// its factory, plus the handlers that perform notification fan-out and
// outbound email delivery.
package delivery
