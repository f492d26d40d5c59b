package main

import "github.com/brhamilton/chippy/cmd"

func main() {
	cmd.Execute()
}
