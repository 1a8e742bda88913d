/*
Package persistence bridges the editor to durable storage.

The Bridge never returns errors: a failed read starts the editor fresh and a
failed write leaves the change in memory only. Failures are logged and
reported through domain.LifecycleHooks.

Writes can run on a single background writer (Start/Enqueue/Flush/Close) so
command processing never waits on storage latency. Only the latest enqueued
snapshot matters; an unwritten older one is replaced, not queued.
*/
package persistence
