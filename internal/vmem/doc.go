// Package vmem provides platform-specific helpers for obtaining page-granular
// memory directly from the operating system.
//
// Memory returned by Map lives outside the Go heap: the garbage collector
// neither scans nor frees it, and it must be returned with Unmap exactly once.
// On platforms without page mapping, Map falls back to the Go heap.
package vmem
