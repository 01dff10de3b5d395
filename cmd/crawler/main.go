package main

import (
	cmd "github.com/kdevan/doccrawl/internal/cli"
)

func main() {
	cmd.Execute()
}
