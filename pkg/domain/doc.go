/*
Package domain contains the core layout model of the Tessera editor.

It defines the recursive tree of cells a user builds by dropping module
templates onto empty cells, the catalog of those templates, and the policy
that decides which cells may receive a drop. The package is pure: no I/O,
no locking, no persistence.

# Key Entities

  - ModuleType: A named row/column split template (e.g. "2x2").
  - Node: A cell of the layout, either a Leaf holding text or a Container
    holding exactly Rows x Cols children in row-major order.
  - CanAccept: The drop policy. Only leaves accept modules.
  - Verify: Structural invariant check over a whole tree.
*/
package domain
