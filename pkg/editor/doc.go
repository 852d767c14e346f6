/*
Package editor implements the editing session that mediates between UI
collaborators and the layout tree.

A Session owns exactly one tree. It is the only place that mutates the tree
structure: RequestDrop re-checks the drop policy against the tree as it is at
drop time and splits the target leaf when accepted.

Sessions are not safe for concurrent use. Front-ends with more than one
writer must serialize calls, see package session.

# Usage

	s := editor.New()
	if err := s.RequestDrop(ctx, s.Current().ID(), domain.ModuleGrid); err != nil {
		// errors.Is(err, domain.ErrRejectedDrop) is a normal decline
	}
	html := s.ExportMarkup()
*/
package editor
