package main

import "github.com/vishav1771/signac-flow/cmd"

func main() {
	cmd.Execute()
}
