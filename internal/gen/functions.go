package gen

import (
	"strings"

	"schema-compiler/internal/code"
	"schema-compiler/internal/cpputil"
	"schema-compiler/internal/model"
)

// generateFunction renders the namespace wrapping one function's
// Params and Results declarations.
func (g *generator) generateFunction(fn *model.Function) (*code.Code, error) {
	c := code.New()

	// Windows headers #define SendMessage, so that scope name is off
	// limits.
	functionNamespace := cpputil.Classname(fn.Name)
	if functionNamespace == "SendMessage" {
		functionNamespace = "PassMessage"
	}

	c.Appendf("namespace %s {", functionNamespace)
	c.Append("")

	params, err := g.generateFunctionParams(fn)
	if err != nil {
		return nil, err
	}
	c.Cblock(params)

	if fn.ReturnsAsync != nil {
		results, err := g.generateFunctionResults(fn.ReturnsAsync)
		if err != nil {
			return nil, err
		}
		c.Cblock(results)
	}

	c.Appendf("}  // namespace %s", functionNamespace)

	return c, nil
}

// generateFunctionParams renders the move-only Params struct carrying a
// function's arguments, with its factories and a private default
// constructor. Functions without parameters declare nothing.
func (g *generator) generateFunctionParams(fn *model.Function) (*code.Code, error) {
	if len(fn.Params) == 0 {
		return code.New(), nil
	}

	c := code.New()
	err := c.Scope("struct Params {", "", func() error {
		if g.generateErrorMessages {
			c.Append("static base::expected<Params, std::u16string> " +
				"Create(const base::Value::List& args);")
			c.Comment("DEPRECATED: prefer the variant of this function" +
				" returning errors with `base::expected`.")
		}

		c.Appendf("static absl::optional<Params> Create(%s);",
			g.paramList("const base::Value::List& args"))
		c.Append("Params(const Params&) = delete;")
		c.Append("Params& operator=(const Params&) = delete;")
		c.Append("Params(Params&& rhs);")
		c.Append("Params& operator=(Params&& rhs);")
		c.Append("~Params();")
		c.Append("")

		paramTypes := make([]*model.Type, len(fn.Params))
		for i, param := range fn.Params {
			paramTypes[i] = param.Type
		}
		nested, err := g.generateTypes(paramTypes, typeOptions{})
		if err != nil {
			return err
		}
		c.Cblock(nested)

		fields, err := g.generateFields(fn.Params)
		if err != nil {
			return err
		}
		c.Cblock(fields)

		return nil
	})
	if err != nil {
		return nil, err
	}

	c.Append("")
	_ = c.Scope(" private:", "};", func() error {
		c.Append("Params();")

		return nil
	})

	return c, nil
}

// generateFunctionResults renders the Results namespace of a function
// with an asynchronous return.
func (g *generator) generateFunctionResults(ra *model.ReturnsAsync) (*code.Code, error) {
	c := code.New()
	c.Append("namespace Results {")
	c.Append("")

	args, err := g.generateAsyncResponseArguments(ra.Params)
	if err != nil {
		return nil, err
	}
	c.Concat(args)

	c.Append("}  // namespace Results")

	return c, nil
}

// generateAsyncResponseArguments renders the Create factory building
// the value list handed to a callback, promise, or event: inline param
// types first, then one declaration per parameter.
func (g *generator) generateAsyncResponseArguments(params []*model.Property) (*code.Code, error) {
	c := code.New()

	paramTypes := make([]*model.Type, len(params))
	for i, param := range params {
		paramTypes[i] = param.Type
	}
	nested, err := g.generateTypes(paramTypes, typeOptions{toplevel: true})
	if err != nil {
		return nil, err
	}
	c.Cblock(nested)

	declarations := make([]string, 0, len(params))
	for _, param := range params {
		if param.Description != "" {
			c.Comment(param.Description)
		}

		cppType, err := g.types.cppType(param.Type, false)
		if err != nil {
			return nil, err
		}
		declarations = append(declarations, cpputil.GetParameterDeclaration(param, cppType))
	}
	c.Appendf("base::Value::List Create(%s);", strings.Join(declarations, ", "))

	return c, nil
}

// generateEvent renders the namespace wrapping one event: its name
// constant and the payload builder.
func (g *generator) generateEvent(ev *model.Event) (*code.Code, error) {
	c := code.New()

	eventNamespace := cpputil.Classname(ev.Name)
	c.Appendf("namespace %s {", eventNamespace)
	c.Append("")
	c.Concat(g.generateEventNameConstant(ev))

	args, err := g.generateAsyncResponseArguments(ev.Params)
	if err != nil {
		return nil, err
	}
	c.Concat(args)

	c.Appendf("}  // namespace %s", eventNamespace)

	return c, nil
}

// generateEventNameConstant declares kEventName, annotated with the
// full dotted event name clients subscribe to.
func (g *generator) generateEventNameConstant(ev *model.Event) *code.Code {
	c := code.New()
	c.Appendf(`extern const char kEventName[];  // "%s.%s"`, g.ns.Name, ev.Name)
	c.Append("")

	return c
}

// paramList joins parameter declarations, appending the error
// out-param when error messages are enabled.
func (g *generator) paramList(params ...string) string {
	if g.generateErrorMessages {
		params = append(params, "std::u16string& error")
	}

	return strings.Join(params, ", ")
}

// paramListLegacyError is paramList for the deprecated factory, which
// still takes its error out-param as a pointer.
func (g *generator) paramListLegacyError(params ...string) string {
	if g.generateErrorMessages {
		params = append(params, "std::u16string* error")
	}

	return strings.Join(params, ", ")
}
