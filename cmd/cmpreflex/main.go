// Command cmpreflex is a static analysis tool for detecting comparators
// and less functions that are not reflexive.
//
// Usage:
//
//	cmpreflex ./...
//	cmpreflex -config .cmpreflex.yaml ./...
//
// Or as a vet tool:
//
//	go vet -vettool=$(which cmpreflex) ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/mpyw/cmpreflex"
)

func main() {
	singlechecker.Main(cmpreflex.Analyzer)
}
