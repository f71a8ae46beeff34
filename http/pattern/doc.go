/*

Package pattern implements path-template matching for the slop engine.

A template like /users/:id mixes literal segments with named parameters.
Matching has no wildcards, no catch-alls, and no backtracking:
a path matches only when its segment count equals the template's
and every literal segment is byte-for-byte equal.

Precedence between overlapping templates is not this package's concern;
the engine resolves overlaps by registration order.

*/
package pattern
