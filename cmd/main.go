package main

import "hourglass/internal/cli"

func main() {
	cli.Execute()
}
