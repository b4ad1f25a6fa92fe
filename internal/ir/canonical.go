package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces RFC 8785 canonical JSON for fingerprinting.
//
// Differences from json.Marshal:
//  1. Object keys sorted by UTF-16 code units (not UTF-8 bytes)
//  2. No HTML escaping (< > & are NOT escaped)
//  3. Strings are NFC normalized
//  4. No floats and no null (returns error)
//
// Supported values: string, int, int64, bool, []any, []string, map[string]any.
func MarshalCanonical(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeCanonical(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeCanonical(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case nil:
		return fmt.Errorf("null is forbidden in canonical JSON")
	case string:
		return writeCanonicalString(buf, val)
	case int:
		fmt.Fprintf(buf, "%d", val)
	case int64:
		fmt.Fprintf(buf, "%d", val)
	case bool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case []string:
		arr := make([]any, len(val))
		for i, s := range val {
			arr[i] = s
		}
		return writeCanonicalArray(buf, arr)
	case []any:
		return writeCanonicalArray(buf, val)
	case map[string]any:
		return writeCanonicalObject(buf, val)
	case float64, float32:
		return fmt.Errorf("floats are forbidden in canonical JSON: %v", val)
	default:
		return fmt.Errorf("unsupported type for canonical JSON: %T", v)
	}
	return nil
}

func writeCanonicalArray(buf *bytes.Buffer, arr []any) error {
	buf.WriteByte('[')
	for i, elem := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeCanonical(buf, elem); err != nil {
			return fmt.Errorf("array[%d]: %w", i, err)
		}
	}
	buf.WriteByte(']')
	return nil
}

func writeCanonicalObject(buf *bytes.Buffer, obj map[string]any) error {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	// RFC 8785 UTF-16 code unit ordering
	slices.SortFunc(keys, compareKeysRFC8785)

	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeCanonicalString(buf, k); err != nil {
			return fmt.Errorf("key %q: %w", k, err)
		}
		buf.WriteByte(':')
		if err := writeCanonical(buf, obj[k]); err != nil {
			return fmt.Errorf("value for key %q: %w", k, err)
		}
	}
	buf.WriteByte('}')
	return nil
}

// compareKeysRFC8785 compares strings by UTF-16 code units.
// Go's default string comparison uses UTF-8, which orders supplementary-plane
// characters differently.
func compareKeysRFC8785(a, b string) int {
	return slices.Compare(utf16.Encode([]rune(a)), utf16.Encode([]rune(b)))
}

// writeCanonicalString writes an NFC-normalized JSON string without HTML
// escaping. U+2028 and U+2029 stay literal as RFC 8785 requires.
func writeCanonicalString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(norm.NFC.String(s)); err != nil {
		return err
	}
	out := bytes.TrimSuffix(tmp.Bytes(), []byte("\n"))
	buf.Write(unescapeLineSeparators(out))
	return nil
}

// unescapeLineSeparators turns the \u2028 and \u2029 escapes produced by
// encoding/json back into literal characters. An escape preceded by an odd
// number of backslashes is literal text and is left alone.
func unescapeLineSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}
	var b strings.Builder
	b.Grow(len(data))
	backslashes := 0
	for i := 0; i < len(data); i++ {
		c := data[i]
		if c == '\\' && backslashes%2 == 0 && i+6 <= len(data) &&
			string(data[i+1:i+5]) == "u202" && (data[i+5] == '8' || data[i+5] == '9') {
			if data[i+5] == '8' {
				b.WriteString("\u2028")
			} else {
				b.WriteString("\u2029")
			}
			i += 5
			backslashes = 0
			continue
		}
		if c == '\\' {
			backslashes++
		} else {
			backslashes = 0
		}
		b.WriteByte(c)
	}
	return []byte(b.String())
}

// canonicalIdent converts a TypeIdent to a canonical-JSON-ready value.
func canonicalIdent(t TypeIdent) any {
	return Visit[any](t, canonicalVisitor{})
}

type canonicalVisitor struct{}

func (canonicalVisitor) Scalar(s Scalar) any { return map[string]any{"scalar": s.Kind.String()} }
func (canonicalVisitor) SchemaEnum(e SchemaEnum) any {
	return map[string]any{"enum": e.Name}
}
func (canonicalVisitor) Array(a Array) any   { return map[string]any{"array": canonicalIdent(a.Elem)} }
func (canonicalVisitor) Option(o Option) any { return map[string]any{"option": canonicalIdent(o.Elem)} }
func (canonicalVisitor) Tuple(t Tuple) any   { return map[string]any{"tuple": canonicalIdents(t.Elems)} }
func (canonicalVisitor) GenericParam(g GenericParam) any {
	return map[string]any{"generic": g.Name}
}
func (canonicalVisitor) Application(a TypeApplication) any {
	return map[string]any{"apply": a.Name, "args": canonicalIdents(a.Args)}
}

func canonicalIdents(ts []TypeIdent) []any {
	out := make([]any, len(ts))
	for i, t := range ts {
		out[i] = canonicalIdent(t)
	}
	return out
}

// canonicalDecl converts a TypeDecl to a canonical-JSON-ready value.
func canonicalDecl(d TypeDecl) map[string]any {
	body := MatchExpr(d.Body,
		func(i IdentExpr) any { return map[string]any{"alias": canonicalIdent(i.Ident)} },
		func(r Record) any {
			fields := make([]any, len(r.Fields))
			for i, f := range r.Fields {
				fields[i] = map[string]any{"name": f.Name, "original": f.Original, "type": canonicalIdent(f.Type)}
			}
			return map[string]any{"record": fields}
		},
		func(v Variant) any {
			ctors := make([]any, len(v.Constructors))
			for i, c := range v.Constructors {
				ctors[i] = map[string]any{"name": c.Name, "payload": canonicalIdent(c.Payload)}
			}
			return map[string]any{"variant": ctors}
		},
	)
	params := d.Params
	if params == nil {
		params = []string{}
	}
	return map[string]any{"name": d.Name, "params": params, "body": body}
}
