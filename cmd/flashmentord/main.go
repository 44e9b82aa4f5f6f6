package main

import "github.com/flashmentor-network/flashmentor/internal/cli"

func main() {
	cli.Execute()
}
