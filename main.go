package main

import "github.com/KaramelBytes/pricebook-cli/cmd"

func main() {
	cmd.Execute()
}
