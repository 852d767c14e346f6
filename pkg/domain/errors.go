package domain

import "errors"

// ErrInvalidState is returned when content is read or written on a Container.
var ErrInvalidState = errors.New("invalid node state")

// ErrInvalidOperation is returned when Split is called on a node that is not a Leaf.
var ErrInvalidOperation = errors.New("only a leaf cell may accept a new module")

// ErrRejectedDrop is returned when the drop policy declines a drop.
// It is a normal outcome, not a defect.
var ErrRejectedDrop = errors.New("drop rejected")

// ErrUnknownModule is returned when a module ID is not part of the catalog.
var ErrUnknownModule = errors.New("unknown module")

// ErrInvalidModule is returned when a module has a non-positive row or column count.
var ErrInvalidModule = errors.New("invalid module shape")

// ErrNodeNotFound is returned when a node ID cannot be found in the tree.
var ErrNodeNotFound = errors.New("node not found")

// ErrSessionNotFound is returned when a session ID cannot be found in the registry.
var ErrSessionNotFound = errors.New("session not found")

// ErrCorruptTree signals a violated structural invariant.
var ErrCorruptTree = errors.New("corrupt layout tree")

// ErrContentTooLarge is returned when leaf text exceeds the size limit.
var ErrContentTooLarge = errors.New("content exceeds maximum allowed size")

// ErrInvalidContent is returned when leaf text is not valid UTF-8.
var ErrInvalidContent = errors.New("invalid content")
