package main

import "github.com/mcoot/rpslsgame/internal/cli"

func main() {
	cli.Execute()
}
