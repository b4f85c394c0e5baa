// Command hashpw prints the bcrypt hash of a password for the
// ADMIN_PASSWORD_HASH environment variable.
//
// Usage: hashpw <password>
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/drivenow/car-rental-backend/internal/auth"
)

func main() {
	if len(os.Args) != 2 {
		log.Fatalf("usage: %s <password>", os.Args[0])
	}

	hasher := auth.NewBcryptPasswordHasher()
	hash, err := hasher.Hash(os.Args[1])
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	fmt.Println(hash)
}
