// Package pypi provides an HTTP client for the Python Package Index API.
//
// # Overview
//
// This package fetches package metadata from PyPI (https://pypi.org) via
// its JSON API (GET /pypi/<name>/json).
//
// # Usage
//
//	client := pypi.NewClient(pypi.DefaultBaseURL)
//	pkg, err := client.FetchPackage(ctx, "flask")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	rec := pkg.Record()
//
// # PackageInfo
//
// [Client.FetchPackage] returns a [PackageInfo] containing:
//
//   - Name, Version: Package identity of the current release
//   - Summary, Description: Short and long description
//   - Classifiers, RequiresDist: Raw trove classifiers and dependency specifiers
//   - License: The declared license (license field, license expression, or classifier)
//   - HomePage, PackageURL: Links for pkg-descr and WWW
//   - Sdist: The source distribution of the current release, if one was published
//
// Dependency specifiers are passed through untouched, environment markers
// included; interpreting them is left to the requirement package.
package pypi
