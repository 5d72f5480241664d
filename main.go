package main

import "lattice/loom/cmd"

func main() {
	cmd.Execute()
}
