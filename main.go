package main

import "github.com/PolarWolf314/modelorg/cmd"

func main() {
	cmd.Execute()
}
