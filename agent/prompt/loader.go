package prompt

import (
	_ "embed"
	"strings"
)

//go:embed template/persona.txt
var personaRaw string

// Persona returns the system persona for the sales assistant. The embed is
// compile-time; trimming is cheap, so this is safe to call per message.
func Persona() string {
	return strings.TrimSpace(personaRaw)
}
