package main

import "github.com/Nordgaren/png-util/cmd/pngutil/cmd"

func main() {
	cmd.Execute()
}
