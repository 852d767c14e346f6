/*
Package tessera is a nested table layout editor core.

A layout starts as a single empty cell. Dropping a module preset (a uniform
grid such as 2x2 or 1x3) onto an empty cell splits it into a container of new
empty cells, which can be split again. Only empty cells accept a drop. The
resulting tree is exported as nested flex-box HTML.

# Architecture

The core is small and has no I/O:

  - pkg/domain: the layout tree (Node), the module catalog, the drop policy
    (CanAccept) and structural verification.
  - pkg/markup: the recursive serializer.
  - pkg/editor: one editing session (current root, drop, content, reset, export).

Around it, pkg/session manages many sessions with a single writer per session,
and the adapters expose them over HTTP (with SSE layout events) and MCP.
Layout events can fan out across replicas through redis.

# Usage

	package main

	import (
		"context"
		"errors"
		"fmt"
		"log"

		"github.com/aretw0/tessera/pkg/domain"
		"github.com/aretw0/tessera/pkg/editor"
	)

	func main() {
		ctx := context.Background()
		s := editor.New()

		// Split the root into header, content and footer.
		if err := s.RequestDrop(ctx, s.Current().ID(), domain.ModuleHeaderContentFooter); err != nil {
			log.Fatal(err)
		}

		// The root is a container now, so a second drop on it is rejected.
		err := s.RequestDrop(ctx, s.Current().ID(), domain.ModuleGrid)
		fmt.Println(errors.Is(err, domain.ErrRejectedDrop)) // true

		fmt.Print(s.ExportMarkup(ctx))
	}

The tessera command wraps the same core: "tessera serve" for the HTTP API,
"tessera mcp" for agents, and "tessera build" to replay a YAML plan of drops.
*/
package tessera
