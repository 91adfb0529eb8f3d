package main

import "github.com/naka-gawa/readme-streak/cmd"

func main() {
	cmd.Execute()
}
