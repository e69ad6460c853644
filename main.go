package main

import "github.com/iksnae/lap-analyzer/cmd"

func main() {
	cmd.Execute()
}
