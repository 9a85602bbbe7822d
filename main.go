package main

import "github.com/curalinkai/curalink/cmd"

func main() {
	cmd.Execute()
}
