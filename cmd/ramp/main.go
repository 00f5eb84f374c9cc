package main

import "github.com/vietddude/ramp/internal/cli"

func main() {
	cli.Execute()
}
