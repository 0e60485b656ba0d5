package main

import "github.com/lukman83/wb-scrap/cmd"

func main() {
	cmd.Execute()
}
