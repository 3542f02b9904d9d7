package main

import (
	"github.com/autopkg/index/pkg/cli"
)

func main() {
	cli.Execute()
}
