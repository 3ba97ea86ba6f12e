package main

import "github.com/kosharny/ThunderpickMove/cmd/tm/root"

func main() {
	root.Execute()
}
