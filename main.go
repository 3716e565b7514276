package main

import "github.com/cglab/imagefilter/cmd"

func main() {
	cmd.Execute()
}
