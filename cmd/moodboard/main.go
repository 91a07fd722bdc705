package main

import "github.com/youruser/moodboard/internal/cli"

func main() {
	cli.Execute()
}
