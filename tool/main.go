package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"path"
	"strings"

	"github.com/alecthomas/participle"

	. "github.com/dave/jennifer/jen"
)

type ADT struct {
	Imports      []string       `("import" @String ";")*`
	Declarations []*Declaration `@@*`
}

type TField struct {
	Name string `@Ident`
	Kind string `(@Ident | @String | @RawString) ";"`
}

type TCase struct {
	Name   string    `@Ident "of"`
	Kind   string    `(  (@Ident | @String | @RawString)`
	Fields []*TField ` | "{" @@* "}")`
}

type Declaration struct {
	Name  string   `"type" @Ident "="`
	Plain *string  `(  (@Ident | @String | @RawString)`
	Many  *[]TCase ` | ("|" (@@))*)`
	I     struct{} `";"`
}

func (t *ADT) IsSumType(name string) bool {
	for _, decls := range t.Declarations {
		if decls.Name == name && decls.Many != nil {
			return true
		}
	}
	return false
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '`') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// kind renders a type expression such as "[]Statement" or "types.Span",
// qualifying package selectors with the declared imports.
func (t *ADT) kind(k string) Code {
	k = unquote(k)

	switch {
	case strings.HasPrefix(k, "[]"):
		return Index().Add(t.kind(k[2:]))
	case strings.HasPrefix(k, "*"):
		return Op("*").Add(t.kind(k[1:]))
	}

	if i := strings.Index(k, "."); i >= 0 {
		for _, imp := range t.Imports {
			imp = unquote(imp)
			if path.Base(imp) == k[:i] {
				return Qual(imp, k[i+1:])
			}
		}
	}

	return Id(k)
}

func generateVisitor(f *File, decl *Declaration) {
	var methods []Code
	var cases []Code

	for _, it := range *decl.Many {
		methods = append(methods, Id("Visit"+it.Name).Params(Id(it.Name)).Params(Id("R"), Error()))
		cases = append(cases, Case(Id(it.Name)).Block(
			Return(Id("v").Dot("Visit"+it.Name).Call(Id("n"))),
		))
	}

	visitor := decl.Name + "Visitor"

	f.Commentf("%s has one method per %s variant.", visitor, decl.Name)
	f.Type().Id(visitor).Index(Id("R").Id("any")).Interface(methods...)

	f.Commentf("Visit%s dispatches node to the method of v handling its variant.", decl.Name)
	f.Func().Id("Visit"+decl.Name).Index(Id("R").Id("any")).Params(
		Id("node").Id(decl.Name),
		Id("v").Id(visitor).Index(Id("R")),
	).Params(Id("R"), Error()).Block(
		Switch(Id("n").Op(":=").Id("node").Assert(Type())).Block(cases...),
		Var().Id("zero").Id("R"),
		Return(Id("zero"), Qual("fmt", "Errorf").Call(Lit("unknown "+decl.Name+" variant %T"), Id("node"))),
	)
}

func GenerateDecls(pkgname string, t *ADT) string {
	f := NewFile(pkgname)
	f.HeaderComment("Code generated by adtGen. DO NOT EDIT.")

	for _, decl := range t.Declarations {

		if decl.Plain != nil {
			f.Type().Id(decl.Name).Add(t.kind(*decl.Plain))
		} else if decl.Many != nil {
			f.Type().Id(decl.Name).Interface(
				Id("is_" + decl.Name).Params(),
			)

			for _, it := range *decl.Many {
				switch {
				case it.Fields != nil:
					var fields []Code
					for _, field := range it.Fields {
						fields = append(fields, Id(field.Name).Add(t.kind(field.Kind)))
					}
					f.Type().Id(it.Name).Struct(fields...)
				case t.IsSumType(it.Kind):
					f.Type().Id(it.Name).Struct(Id(it.Kind))
				default:
					f.Type().Id(it.Name).Add(t.kind(it.Kind))
				}

				f.Func().Params(Id("v").Id(it.Name)).Id("is_" + decl.Name).Params().Block()
			}

			generateVisitor(f, decl)
		}
	}

	return fmt.Sprintf("%#v", f)
}

func main() {
	parser := participle.MustBuild(&ADT{})

	if len(os.Args) != 4 {
		fmt.Fprintln(os.Stderr, "usage: adtGen <input.adt> <output.go> <package>")
		os.Exit(2)
	}

	in := os.Args[1]
	out := os.Args[2]
	pkgname := os.Args[3]

	inData, err := ioutil.ReadFile(in)
	if err != nil {
		panic(err)
	}

	ast := ADT{}
	err = parser.ParseBytes(inData, &ast)
	if err != nil {
		panic(err)
	}

	err = ioutil.WriteFile(out, []byte(GenerateDecls(pkgname, &ast)), 0644)
	if err != nil {
		panic(err)
	}
}
