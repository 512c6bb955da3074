package main

import "github.com/studibuch/riona/cmd"

func main() {
	cmd.Execute()
}
