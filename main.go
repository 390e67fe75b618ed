package main

import "e200x/getmask/internal/cli"

func main() {
	cli.Execute()
}
