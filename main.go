package main

import "github.com/cherryshop/cherryshop-api/app/cmd"

func main() {
	cmd.RunCli()
}
