package main

import "github.com/josephlewis42/crsh/cmd"

func main() {
	cmd.Execute()
}
