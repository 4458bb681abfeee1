package main

import "github.com/mouse-blink/consept/cmd"

func main() {
	cmd.Execute()
}
