package main

import "github.com/Bestfast/gosumemory-helper/internal/cli"

func main() {
	cli.Execute()
}
