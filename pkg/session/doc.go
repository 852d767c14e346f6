/*
Package session implements multi-session orchestration for the editor.

It is the single-writer serialization point for concurrent front-ends: every
read or mutation of a session's tree runs under that session's lock, so a
drop is always validated against the tree as it is at drop time. Changes are
announced on an optional EventBus for live UI updates.
*/
package session
