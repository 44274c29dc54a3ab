package main

import "template-catalog/cmd"

func main() {
	cmd.Execute()
}
