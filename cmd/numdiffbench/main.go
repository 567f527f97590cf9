package main

import "numdiffbench/cmd/numdiffbench/cmd"

func main() {
	cmd.Execute()
}
