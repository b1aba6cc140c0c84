package main

import (
	"github.com/rotaboard/rotaboard/tools/linters/noclock"
	"golang.org/x/tools/go/analysis/singlechecker"
)

func main() {
	singlechecker.Main(noclock.Analyzer)
}
