package main

import (
	"context"
	"os"

	"github.com/thenoetrevino/partners/cmd"
)

func main() {
	os.Exit(cmd.Execute(context.Background()))
}
