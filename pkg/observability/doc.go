/*
Package observability provides tools for monitoring the page editor.

It turns editor lifecycle events into Prometheus metrics and structured log
records. Both are plain domain.LifecycleHooks, so they compose with any
other hook through LifecycleHooks.Merge.
*/
package observability
