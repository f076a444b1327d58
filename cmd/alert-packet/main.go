package main

import "alert-packet/internal/cli"

func main() {
	cli.Execute()
}
