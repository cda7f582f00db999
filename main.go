package main

import "github.com/dentcare/dentcare_backend/cmd"

func main() {
	cmd.Execute()
}
