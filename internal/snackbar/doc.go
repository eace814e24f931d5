// Package snackbar implements the transient-notification pipeline: a pending slot
// holding the latest event, a driver that dispatches each distinct event exactly once,
// and host queues that show one snackbar at a time.
package snackbar
