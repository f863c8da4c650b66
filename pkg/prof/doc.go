// Package prof wraps runtime/pprof for long-running capture sessions:
// a process-wide CPU profile started and stopped around the session,
// and a heap snapshot written when it ends.
package prof
