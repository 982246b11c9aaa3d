package main

import "datemark/cmd"

func main() {
	cmd.Execute()
}
