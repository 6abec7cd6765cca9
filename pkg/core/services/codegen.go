package services

import (
	"crypto/rand"
	"log"
	"math/big"
	"strings"
)

const (
	charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	DefaultCodeLength  = 6
	DefaultMaxAttempts = 10
)

// CodeGenerator draws random alphanumeric short codes that are not yet
// present in the link store. It does not reserve the code.
type CodeGenerator struct {
	length      int
	maxAttempts int
	taken       func(code string) bool
	random      func(length int) (string, error)
}

func NewCodeGenerator(length, maxAttempts int, taken func(code string) bool) *CodeGenerator {
	if length <= 0 {
		length = DefaultCodeLength
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &CodeGenerator{
		length:      length,
		maxAttempts: maxAttempts,
		taken:       taken,
		random:      generateShortCode,
	}
}

// Generate returns a free code, or a *CodeGenerationError once every
// attempt collided.
func (g *CodeGenerator) Generate() (string, error) {
	for i := 0; i < g.maxAttempts; i++ {
		code, err := g.random(g.length)
		if err != nil {
			return "", err
		}
		if !g.taken(code) {
			return code, nil
		}
		log.Printf("Short code %s already exists, retrying (%d/%d)", code, i+1, g.maxAttempts)
	}
	return "", &CodeGenerationError{Attempts: g.maxAttempts}
}

// validCode reports whether code is non-empty and drawn from the code alphabet
func validCode(code string) bool {
	if code == "" {
		return false
	}
	for i := 0; i < len(code); i++ {
		if strings.IndexByte(charset, code[i]) < 0 {
			return false
		}
	}
	return true
}

func generateShortCode(length int) (string, error) {
	b := make([]byte, length)
	n := big.NewInt(int64(len(charset)))
	for i := range b {
		num, err := rand.Int(rand.Reader, n)
		if err != nil {
			return "", err
		}
		b[i] = charset[num.Int64()]
	}
	return string(b), nil
}
