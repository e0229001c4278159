package main

import (
	"log"
	"os"
)

func helper() {
	os.Exit(2)
}

func main() {
	defer log.Println("deferred")
	if len(os.Args) > 3 {
		os.Exit(1) // want `direct call to os.Exit in main.main is forbidden`
	}
	func() {
		os.Exit(3)
	}()
	helper()
}
