// Package pkg provides the libraries behind pyport, which creates FreeBSD
// ports from PyPI packages.
//
// # Overview
//
// A port is generated in stages, each owned by one package:
//
//  1. [integrations/pypi] - fetch the package record from the PyPI JSON API
//  2. [pyversion] - turn trove classifiers into a USES=python range
//  3. [requirement] - translate requires_dist into RUN_DEPENDS origins
//  4. [ports] - render the Makefile and pkg-descr, find existing ports
//  5. [distfile] - run make makesum, verify and extract the sdist
//  6. [license] - detect the license file and map it to a ports tag
//
// [pipeline] runs the stages for a batch of packages and collects the
// report. [config], [errors], [observability] and [buildinfo] are shared
// infrastructure.
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/pyport/pkg/integrations/pypi"
//	    "github.com/matzehuels/pyport/pkg/pipeline"
//	    "github.com/matzehuels/pyport/pkg/ports"
//	)
//
//	runner := pipeline.NewRunner(pypi.NewClient(""), ports.NewTreeLookup("/usr/ports"), nil)
//	report, err := runner.Run(context.Background(), pipeline.Options{
//	    Dir:      "out",
//	    Packages: []string{"flask"},
//	})
package pkg
