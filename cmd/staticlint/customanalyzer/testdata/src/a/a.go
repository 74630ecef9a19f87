package main

import (
	"fmt"
	"os"
)

func exit(code int) {
	os.Exit(code)
}

func main() {
	defer fmt.Println("unreachable")
	func() {
		os.Exit(2)
	}()
	if len(os.Args) > 3 {
		exit(1)
	}
	os.Exit(0) // want "direct os.Exit call in main function"
}
