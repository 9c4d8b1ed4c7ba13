// Package transform provides document normalization utilities, applied
// to decoded JSON documents before validation.
package transform

import (
	"strings"
)

// DocTrimSpace runs [strings.TrimSpace] on all string values in the
// document, recursing into nested maps and slices.
func DocTrimSpace(doc map[string]any) {
	docStringFunc(doc, strings.TrimSpace)
}

// DocToLower runs [strings.ToLower] on all string values in the document.
func DocToLower(doc map[string]any) {
	docStringFunc(doc, strings.ToLower)
}

// DocStringFunc applies f to every string value in the document recursively.
func DocStringFunc(doc map[string]any, f func(string) string) {
	docStringFunc(doc, f)
}

// DocFieldFunc applies f to the named fields only, when they hold strings.
func DocFieldFunc(doc map[string]any, f func(string) string, fields ...string) {
	for _, name := range fields {
		if s, ok := doc[name].(string); ok {
			doc[name] = f(s)
		}
	}
}

// DocMulti runs all given normalization functions on the document sequentially.
func DocMulti(doc map[string]any, fns ...func(map[string]any)) {
	for _, f := range fns {
		f(doc)
	}
}

func docStringFunc(doc map[string]any, f func(string) string) {
	for k, v := range doc {
		doc[k] = normalizeValue(v, f)
	}
}

func normalizeValue(v any, f func(string) string) any {
	switch t := v.(type) {
	case string:
		return f(t)
	case map[string]any:
		docStringFunc(t, f)
		return t
	case []any:
		for i := range t {
			t[i] = normalizeValue(t[i], f)
		}
		return t
	default:
		return v
	}
}
