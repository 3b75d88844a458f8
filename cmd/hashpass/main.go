package main

import (
	"fmt"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/service"
	"os"
)

// hashpass печатает bcrypt-хеш пароля для ручного заведения учётных записей.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: hashpass <password>")
		os.Exit(1)
	}

	hash, err := service.HashPassword(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(hash)
}
