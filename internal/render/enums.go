package render

import (
	"fmt"
	"strings"
)

// EnumModule renders the Enums.<Name> module a SchemaEnum identifier refers
// to: the polymorphic variant type, its schema and its default (the first
// value).
func EnumModule(name string, values []string) string {
	cases := make([]string, len(values))
	literals := make([]Expr, len(values))
	for i, v := range values {
		cases[i] = "#" + v
		literals[i] = call("S.literal", Raw{"#" + v})
	}
	var b strings.Builder
	fmt.Fprintf(&b, "module %s = {\n", name)
	fmt.Fprintf(&b, "  type t = [%s]\n", strings.Join(cases, " | "))
	fmt.Fprintf(&b, "  let schema: S.t<t> = %s\n", Print(call("S.union", ListLit{literals}), ReScript))
	if len(values) > 0 {
		fmt.Fprintf(&b, "  let default: t = #%s\n", values[0])
	}
	b.WriteString("}")
	return b.String()
}

// EnumTS renders the TypeScript union type of an enum.
func EnumTS(name string, values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return fmt.Sprintf("export type %s_t = %s;", name, strings.Join(quoted, " | "))
}
