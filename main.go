package main

import "github.com/tourin/storefront/cmd"

func main() {
	cmd.Start()
}
