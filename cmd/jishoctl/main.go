package main

import "jishodash/cmd/jishoctl/cmd"

func main() {
	cmd.Execute()
}
