/*
Package session serializes work on stored documents.

The server keeps no editor in memory between requests: each command loads
the document state, runs it through an editor and writes it back while the
Manager holds the lock for that document key. Locks are per key and
reference counted; an optional distributed locker extends them across
replicas sharing one store.
*/
package session
