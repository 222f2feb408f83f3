// Command genhash prints a bcrypt hash for manual user inserts.
// Usage: go run ./cmd/genhash <password>
package main

import (
	"fmt"
	"os"

	"github.com/abhishek972986/porter-managment/internal/service"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	if len(os.Args) != 2 || len(os.Args[1]) < 6 {
		fmt.Fprintln(os.Stderr, "usage: genhash <password of at least 6 characters>")
		os.Exit(2)
	}
	h, err := bcrypt.GenerateFromPassword([]byte(os.Args[1]), service.BcryptCost)
	if err != nil {
		panic(err)
	}
	fmt.Println(string(h))
}
