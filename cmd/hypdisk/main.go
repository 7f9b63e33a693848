package main

import "github.com/hypdisk/hypdisk/cmd/hypdisk/cmd"

func main() {
	cmd.Execute()
}
