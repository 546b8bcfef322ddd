package cmd

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
)

// reserved names are supplied by the environment, never bound positionally.
var reserved = map[string]bool{
	"self":    true,
	"server":  true,
	"channel": true,
	"author":  true,
	"kwargs":  true,
}

type registration struct {
	name       string
	params     []string
	usage      string
	parse      ParseFunc
	parserType *ParserType
}

// Option configures a single registration.
type Option func(*registration)

// Name overrides the command name, which otherwise is the handler's own
// function name in lower case.
func Name(name string) Option {
	return func(r *registration) { r.name = name }
}

// Params declares the positional parameter names of the overload.
func Params(names ...string) Option {
	return func(r *registration) { r.params = append(r.params, names...) }
}

// Usage attaches documentation; it is normalized with TrimUsage.
func Usage(doc string) Option {
	return func(r *registration) { r.usage = doc }
}

// WithParser overrides the parser of the whole command with fn.
func WithParser(fn ParseFunc) Option {
	return func(r *registration) { r.parse = fn }
}

// WithParserType overrides the parser of the whole command with a built-in
// one. Custom is ignored here; use WithParser.
func WithParserType(t ParserType) Option {
	return func(r *registration) { r.parserType = &t }
}

// Register records one overload of a command and returns fn unchanged.
//
// The first registration of a name creates the command; later ones append
// overloads in order. Duplicate arities are kept: resolution picks the
// earliest. Registering a nil handler panics.
func (gb *GroupBuilder) Register(fn HandlerFunc, description string, opts ...Option) HandlerFunc {
	gb.b.mustOpen()
	if fn == nil {
		panic(fmt.Sprintf("cmd: nil handler registered in group %q", gb.g.name))
	}

	var r registration
	for _, opt := range opts {
		opt(&r)
	}

	name := r.name
	if name == "" {
		name = funcName(fn)
	}
	params := positional(r.params)

	def, ok := gb.g.commands[name]
	if !ok {
		def = &Definition{Name: name, Parser: SpacesParser}
		gb.g.commands[name] = def
	}
	def.Overloads = append(def.Overloads, Overload{
		Arity:       len(params),
		Params:      params,
		Description: description,
		Usage:       TrimUsage(r.usage),
		Handler:     Apply(fn, gb.b.middleware...),
	})

	switch {
	case r.parse != nil:
		def.Parser = CustomParser(r.parse)
		def.Overridden = true
	case r.parserType != nil:
		if p, ok := ParserFor(*r.parserType); ok {
			def.Parser = p
			def.Overridden = true
		}
	}

	gb.g.log.WithFields(logrus.Fields{
		"command":  name,
		"params":   params,
		"overload": len(def.Overloads) - 1,
		"parser":   def.Parser.Type,
	}).Debug("command registered")

	return fn
}

func positional(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if reserved[n] {
			continue
		}
		out = append(out, n)
	}
	return out
}

// funcName derives a command name from a function value: the last
// identifier of its runtime name without the method-value suffix.
func funcName(fn HandlerFunc) string {
	f := runtime.FuncForPC(reflect.ValueOf(fn).Pointer())
	if f == nil {
		return ""
	}
	name := f.Name()
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, "-fm")
	return strings.ToLower(name)
}
