// Package pyversion derives the Python version support of a port from
// package classifiers.
//
// # Overview
//
// Two steps turn registry metadata into the USES=python line of a port:
//
//  1. [Classifiers] extracts the declared interpreter versions from trove
//     classifiers such as "Programming Language :: Python :: 3.8".
//  2. [Resolver.Resolve] intersects them with the versions the ports tree
//     builds for and renders a range expression ("3.8+", "-3.9", "3.8-3.10").
//
// # Versions
//
// A [Version] is a (major, minor) pair. A classifier that names only a major
// ("Python :: 3") yields a version whose minor is [Unspecified]; such a
// version sorts before every specific minor of the same major. Only majors 2
// and 3 are meaningful; everything else is ignored.
//
// # Local Support
//
// The local-support set is configuration, not a package global: it is passed
// to [NewResolver] and copied, so a Resolver is safe to share.
package pyversion
