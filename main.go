package main

import "github.com/RyanBlaney/formant-tracker/cmd"

func main() {
	cmd.Execute()
}
