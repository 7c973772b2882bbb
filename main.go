package main

import "github.com/KaramelBytes/tablesift/cmd"

func main() {
	cmd.Execute()
}
