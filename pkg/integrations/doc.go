// Package integrations provides HTTP clients for package registry APIs.
//
// # Overview
//
// The registry client lives in a subpackage:
//
//   - [pypi]: Python Package Index
//
// # Client Pattern
//
//	client := pypi.NewClient(pypi.DefaultBaseURL)
//	pkg, err := client.FetchPackage(ctx, "fastapi")
//
// # Shared Infrastructure
//
// The [Client] type provides the shared JSON GET used by registry clients.
// It maps HTTP status codes to [ErrNotFound] and [ErrNetwork] and reports
// requests through observability.HTTP. There is no caching and no retry:
// a failed request fails the package that needed it.
//
// [pypi]: github.com/matzehuels/pyport/pkg/integrations/pypi
package integrations
