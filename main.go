package main

import (
	"github.com/rtweeks/fair-cg/cmd/fairgen"
)

func main() {
	fairgen.Execute()
}
