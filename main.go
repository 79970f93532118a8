package main

import "github.com/hayato-coosy/kouseian/cmd"

func main() {
	cmd.Execute()
}
