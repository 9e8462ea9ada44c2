package main

import "dating-app-backend/cmd"

func main() {
	cmd.Run()
}
