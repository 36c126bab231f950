package main

import (
	"github.com/tcullen/arcadehub/internal/cli"
)

func main() {
	cli.Execute()
}
