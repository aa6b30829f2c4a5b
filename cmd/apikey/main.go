// Command apikey prints device API keys and the hashes stored for them.
// Without arguments it generates a new key; with arguments it hashes each
// given key, which is useful when provisioning devices by hand.
package main

import (
	"fmt"
	"os"

	"github.com/lexicard/lexicard-api/internal/service/auth"
)

func main() {
	keys := os.Args[1:]
	if len(keys) == 0 {
		key, hash, err := auth.GenerateAPIKey()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating key: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Key: %s\nHash: %s\n", key, hash)
		return
	}

	for _, key := range keys {
		fmt.Printf("Key: %s\nHash: %s\n\n", key, auth.HashAPIKey(key))
	}
}
