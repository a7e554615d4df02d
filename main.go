package main

import "github.com/kerem6790/financeX/cmd"

func main() {
	cmd.Execute()
}
