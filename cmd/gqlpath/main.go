package main

import "github.com/sanixdarker/gqlpath/internal/cli"

func main() {
	cli.Execute()
}
