package main

import "github.com/keiikegami/cirje-seminar-tracker/internal/cli"

func main() {
	cli.Execute()
}
