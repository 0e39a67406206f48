package main

import (
	"github.com/fourstack/dropfour/internal/cli"
)

func main() {
	cli.Execute()
}
