package main

import "github.com/alekpstro/UGEvents/cmd"

// @title UGEvents API
// @version 1.0
// @description Backend for the university department event bulletin board.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cmd.Execute()
}
