package main

import "github.com/joesqua18-code/holidaybasics/cmd"

func main() {
	cmd.Execute()
}
