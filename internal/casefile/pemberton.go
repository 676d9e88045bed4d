package casefile

import (
	"fmt"

	_ "embed"
)

//go:embed pemberton.yaml
var pembertonYAML []byte

// Pemberton returns the built-in Pemberton Manor case. The data ships with
// the binary, so a validation failure here is a programming error.
func Pemberton() *Case {
	c, err := Parse(pembertonYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded Pemberton case is invalid: %v", err))
	}
	return c
}
