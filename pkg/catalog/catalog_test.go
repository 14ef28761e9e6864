package catalog

import (
	"errors"
	"testing"

	"github.com/dop251/goja"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_OrderAndCount(t *testing.T) {
	entries := Default()

	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{
		"python_syntax_error",
		"javascript_missing_brace",
		"python_indentation_error",
		"java_semicolon_missing",
		"python_variable_typo",
	}, names)
}

func TestDefault_CodeIsVerbatim(t *testing.T) {
	byName := make(map[string]Entry)
	for _, e := range Default() {
		byName[e.Name] = e
	}

	tests := []struct {
		name        string
		code        string
		description string
	}{
		{
			name:        "python_syntax_error",
			code:        "def greet(name)\n    print(\"Hello, \" + name)\n\ngreet(\"Alice\")",
			description: "Missing colon after function definition",
		},
		{
			// The trailing space after the parameter list is part of the fixture.
			name:        "javascript_missing_brace",
			code:        "function calculateSum(a, b) \n    return a + b;\n}\n\nconsole.log(calculateSum(5, 3));",
			description: "Missing opening brace",
		},
		{
			name:        "python_indentation_error",
			code:        "def fibonacci(n):\nif n <= 1:\nreturn n\nelse:\nreturn fibonacci(n-1) + fibonacci(n-2)\n\nprint(fibonacci(10))",
			description: "Incorrect indentation",
		},
		{
			name:        "java_semicolon_missing",
			code:        "public class Hello {\n    public static void main(String[] args) {\n        System.out.println(\"Hello World\")\n    }\n}",
			description: "Missing semicolon",
		},
		{
			name:        "python_variable_typo",
			code:        "def calculate_area(radius):\n    pi = 3.14159\n    area = pi * raduis ** 2\n    return area\n\nprint(calculate_area(5))",
			description: "Variable name typo (raduis instead of radius)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := byName[tt.name]
			require.True(t, ok, "entry missing from catalog")
			assert.Equal(t, tt.code, e.Code)
			assert.Equal(t, tt.description, e.Description)
			assert.Equal(t, tt.name+".png", e.FileName())
		})
	}
}

func TestDefault_JavaScriptFixtureDoesNotCompile(t *testing.T) {
	for _, e := range Default() {
		if e.Name != "javascript_missing_brace" {
			continue
		}
		_, err := goja.Compile(e.FileName(), e.Code, false)
		require.Error(t, err, "fixture should keep its syntax error")

		var syntaxErr *goja.CompilerSyntaxError
		assert.True(t, errors.As(err, &syntaxErr), "expected a syntax error, got %T", err)
		return
	}
	t.Fatal("javascript_missing_brace not found")
}

func TestParse_KeepsDocumentOrder(t *testing.T) {
	doc := []byte(`
- name: b
  code: "2"
  description: second
- name: a
  code: "1"
`)
	entries, err := Parse(doc)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, Entry{Name: "b", Code: "2", Description: "second"}, entries[0])
	assert.Equal(t, Entry{Name: "a", Code: "1"}, entries[1])
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty name", "- name: \"\"\n  code: x\n"},
		{"missing code", "- name: a\n"},
		{"path separator", "- name: ../escape\n  code: x\n"},
		{"backslash", "- name: 'a\\b'\n  code: x\n"},
		{"duplicate", "- name: a\n  code: x\n- name: a\n  code: y\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidEntry)
		})
	}
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := Parse([]byte("name: [unterminated"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidEntry)
}
