package prompt

import (
	"embed"
	"fmt"
)

//go:embed templates/*.md
var builtinFS embed.FS

func loadBuiltin(name string) (*Template, error) {
	data, err := builtinFS.ReadFile("templates/" + name + ".md")
	if err != nil {
		return nil, fmt.Errorf("no built-in template %q", name)
	}
	return parseTemplate(string(data))
}
