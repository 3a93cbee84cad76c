// Package requirement translates PyPI dependency specifiers into ports
// dependency lines.
//
// # Overview
//
// A specifier such as "requests[socks] (>=2.0,<3); python_version >= '3'"
// goes through three steps:
//
//  1. [Parse] splits it into name, extras, constraint, and environment marker.
//  2. [NormalizeConstraint] reduces the constraint to a single lower bound,
//     the only comparator a ports dependency line can express.
//  3. [Translator] resolves the port origin through an injected [Lookup]
//     and falls back to a placeholder origin for manual review.
//
// # Constraint Normalization
//
// Only the first clause starting with ">" or "=" is considered:
//
//	""              -> ">=0"
//	">=1.2"         -> ">=1.2"
//	"==1.4.*"       -> ">=1.4"
//	">2.0,<3"       -> ">2.0"
//	">0"            -> ">0"
//	"<3"            -> ">=0"
//	">=0"           -> ">=0"
//
// Lower bounds are never allowed below zero; an unparseable operand falls
// back to ">=0".
//
// # Markers
//
// Environment markers are never evaluated. A marker-gated dependency is
// logged and, unless [WithExcludeMarked] is set, still translated.
package requirement
