package configs

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"

	"github.com/gorilla/securecookie"
)

const secretFile = ".env.new_keys"

// GenerateSecret returns a random base64 signing secret of n bytes.
func GenerateSecret(n int) (string, error) {
	key := securecookie.GenerateRandomKey(n)
	if key == nil {
		return "", fmt.Errorf("could not generate a %d byte key", n)
	}
	return base64.URLEncoding.EncodeToString(key), nil
}

// GenerateAndPrintSecret writes a fresh JWT_SECRET line to w and to
// .env.new_keys in the working directory.
func GenerateAndPrintSecret(w io.Writer) error {
	secret, err := GenerateSecret(64)
	if err != nil {
		return err
	}
	line := fmt.Sprintf("JWT_SECRET=%s\n", secret)

	fmt.Fprintln(w, "================================================")
	fmt.Fprint(w, line)
	fmt.Fprintln(w, "================================================")

	file, err := os.Create(secretFile)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", secretFile, err)
	}
	defer file.Close()

	if _, err := file.WriteString(line); err != nil {
		return fmt.Errorf("failed to write key to file %s: %w", secretFile, err)
	}

	fmt.Fprintf(w, "Key written to '%s'. Existing tokens stop verifying once the secret changes.\n", secretFile)
	return nil
}
