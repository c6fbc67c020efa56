package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Files are checked most-specific first. godotenv never overwrites a
// variable that is already set, so the real environment beats .env.local,
// which beats .env.
var envFiles = []string{".env.local", ".env"}

// LoadDotEnv loads whichever env files exist and reports which were found.
// Missing files are not an error; deployments that configure everything
// through the environment run with none.
func LoadDotEnv() []string {
	var found []string
	for _, name := range envFiles {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		found = append(found, name)
	}
	if len(found) == 0 {
		return nil
	}
	_ = godotenv.Load(found...)
	return found
}
