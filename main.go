package main

import "github.com/theirongolddev/messbook/cmd"

func main() {
	cmd.Execute()
}
