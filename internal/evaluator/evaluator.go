// Package evaluator walks a parsed ast.Stylesheet and produces a CSS output
// tree plus an exported module namespace (spec.md §4.4). It is wired to
// internal/loader via dependency inversion: loader.Loader holds an
// Evaluate func value that this package's NewLoaderEvaluate supplies,
// rather than loader importing this package directly, so that "a module
// load needs to evaluate a module" and "evaluating a module needs to load
// other modules" can both be true without an import cycle — the same
// trick the teacher uses for its bundler/linker boundary (a Linker func
// type field on the bundler, supplied by the linker package at wiring
// time).
package evaluator

import (
	"fmt"

	"github.com/go-sass/sassc/internal/ast"
	"github.com/go-sass/sassc/internal/config"
	"github.com/go-sass/sassc/internal/css"
	"github.com/go-sass/sassc/internal/loader"
	"github.com/go-sass/sassc/internal/logger"
	"github.com/go-sass/sassc/internal/sassparser"
	"github.com/go-sass/sassc/internal/value"
)

// Context carries everything one module's evaluation needs: the loader to
// resolve further loads through, the scope chain, the selector/content
// stacks, and the output tree being built. A fresh Context is created per
// module (per loader.Evaluate call); nothing here is shared across modules
// except through the loader's own coalescing.
type Context struct {
	Loader  *loader.Loader
	Options config.Options
	Module  *loader.Module

	source       ast.Source
	loggerSource logger.Source

	root  *scope
	scope *scope

	namespaces map[string]*loader.Module // "" key is the "@use ... as *" global-namespace bucket

	selectorStack []string
	contentStack  []contentFrame
	callStack     []logger.StackFrame

	output *[]css.Node

	hasNonASCII bool
}

type contentFrame struct {
	body   []ast.Statement
	scope  *scope
	params []ast.Param
}

// NewLoaderEvaluate returns the loader.Evaluate closure that wires this
// package into a Loader, parameterized over the Options a particular
// compilation was invoked with.
func NewLoaderEvaluate(opts config.Options) loader.Evaluate {
	return func(ldr *loader.Loader, source ast.Source, configuration map[string]value.Value, mod *loader.Module) (err error) {
		sheet, err := ldr.Cache.Parse(source.Identifier, func() (ast.Stylesheet, error) {
			return sassparser.Parse(source, *opts.Logger)
		})
		if err != nil {
			return err
		}
		if opts.Logger.HasErrors() {
			return fmt.Errorf("parse error in %s", source.Identifier)
		}

		var out []css.Node
		ctx := &Context{
			Loader:       ldr,
			Options:      opts,
			Module:       mod,
			source:       source,
			loggerSource: source.LoggerSource(),
			namespaces:   map[string]*loader.Module{},
			output:       &out,
		}
		ctx.root = newScope(nil)
		ctx.root.variables = mod.Variables
		ctx.root.functions = mod.Functions
		ctx.root.mixins = mod.Mixins
		for name, v := range configuration {
			ctx.root.declareLocal(name, v)
		}
		ctx.scope = ctx.root
		defer func() {
			if r := recover(); r != nil {
				u, ok := r.(userError)
				if !ok {
					panic(r)
				}
				err = ctx.errorf(logger.Loc{}, "%s", u.message)
			}
		}()

		ctx.execStatements(sheet.Body)

		mod.CSS = out
		return nil
	}
}

// RenderStylesheet evaluates the entrypoint source to completion and
// prints its accumulated CSS output, the operation pkg/api's
// compile/compileString call after wiring up the Loader. Unlike a loaded
// dependency, the entrypoint's output is what the caller actually wants
// back, so it is evaluated into a fresh loader.Module that is never
// installed in the Loader's slots, and that module's CSS is returned as the
// finished tree.
func RenderStylesheet(ldr *loader.Loader, source ast.Source, opts config.Options) (css.Stylesheet, error) {
	evalFn := NewLoaderEvaluate(opts)
	mod := loader.NewModule(source.Identifier)
	if err := evalFn(ldr, source, nil, mod); err != nil {
		return css.Stylesheet{}, err
	}
	nodes, _ := mod.CSS.([]css.Node)
	return css.Stylesheet{Nodes: nodes}, nil
}

func (ctx *Context) emit(n css.Node) {
	*ctx.output = append(*ctx.output, n)
}

func (ctx *Context) currentSelector() string {
	if len(ctx.selectorStack) == 0 {
		return ""
	}
	return ctx.selectorStack[len(ctx.selectorStack)-1]
}

func (ctx *Context) errorf(loc logger.Loc, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	ctx.Options.Logger.AddError(&ctx.loggerSource, loc, msg)
	return fmt.Errorf("%s", msg)
}
