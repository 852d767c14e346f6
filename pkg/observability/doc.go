/*
Package observability provides tools for monitoring the Tessera editor.

It binds Prometheus collectors to the editor's lifecycle hooks, so every
session created with those hooks reports drops, splits, resets and exports.
*/
package observability
