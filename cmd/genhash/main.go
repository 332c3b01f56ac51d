// cmd/genhash/main.go — prints the bcrypt hash of a password given on the
// command line. Handy for crafting SQL seeds by hand.
package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: %s <password>", os.Args[0])
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(os.Args[1]), 12)
	if err != nil {
		log.Fatalf("bcrypt error: %v", err)
	}
	fmt.Println(string(hash))
}
