package utils

import (
	"math/rand"
	"os"

	"github.com/Luismorlan/cookmux/utils/dotenv"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// ContainsString returns true iff the provided string slice hay contains string
// needle.
func ContainsString(hay []string, needle string) bool {
	for _, str := range hay {
		if str == needle {
			return true
		}
	}
	return false
}

func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// RandomAlphabetString returns a random lower case string of length n.
func RandomAlphabetString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(b)
}

func IsProdEnv() bool {
	return os.Getenv("COOKMUX_ENV") == dotenv.ProdEnv
}
