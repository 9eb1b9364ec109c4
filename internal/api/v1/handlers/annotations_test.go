package handlers

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Route handlers keep their swag annotations next to the code
func TestHandlers_HaveRouteAnnotations(t *testing.T) {
	fset := token.NewFileSet()
	routes := map[string]string{}

	for _, name := range []string{"session.go", "transcription.go"} {
		file, err := parser.ParseFile(fset, name, nil, parser.ParseComments)
		require.NoError(t, err)

		for _, decl := range file.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || fn.Recv == nil || !fn.Name.IsExported() {
				continue
			}
			require.NotNil(t, fn.Doc, fn.Name.Name)
			for _, line := range strings.Split(fn.Doc.Text(), "\n") {
				if strings.HasPrefix(line, "@Router ") {
					routes[fn.Name.Name] = strings.TrimPrefix(line, "@Router ")
				}
			}
			assert.Contains(t, fn.Doc.Text(), "@Summary ", fn.Name.Name)
		}
	}

	assert.Equal(t, map[string]string{
		"Get":           "/session [get]",
		"SetCredential": "/session/credential [put]",
		"Delete":        "/session [delete]",
		"Upload":        "/uploads [post]",
		"Audio":         "/audio [get]",
		"Create":        "/transcriptions [post]",
		"Download":      "/transcriptions/download [get]",
	}, routes)
}
