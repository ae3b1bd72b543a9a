package main

import (
	"context"

	"github.com/scott-cotton/cli"

	"github.com/latticegen/semiframe/cmd/semitop/commands"
)

func main() {
	cli.MainContext(context.Background(), commands.Root())
}
