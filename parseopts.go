package lucidmath

// Option is an option for compiling.
type Option interface {
	compileOption(registry) registry
}

type (
	funcopt struct {
		name string
		fn   Func
	}
	funcsopt      Funcs
	resolveopt    Resolver
	nodefaultsopt struct{}
)

// registry holds the functions visible to one compilation. Lookups try the
// caller's functions, then the built-in ones, then the resolver.
type registry struct {
	// funcs is the per-compile copy of the caller's functions. It is never
	// the caller's own map.
	funcs Funcs
	// resolved memoizes resolver results, including nil ones, so that the
	// resolver sees each name at most once.
	resolved map[string]Func
	resolve  Resolver
	// nodefaults hides named built-in functions. Operators remain.
	nodefaults bool
}

// lookup finds the function for a name, or nil if there is none.
func (r *registry) lookup(name string) Func {
	fn, ok := r.funcs[name]
	if fn != nil {
		return fn
	}
	if !ok && !(r.nodefaults && isNamed(name)) {
		if fn := globalfuncs[name]; fn != nil {
			return fn
		}
	}
	if fn, ok := r.resolved[name]; ok {
		return fn
	}
	if r.resolve == nil {
		return nil
	}
	fn = r.resolve(name)
	if r.resolved == nil {
		r.resolved = make(map[string]Func)
	}
	r.resolved[name] = fn
	return fn
}

func (r registry) set(name string, fn Func) registry {
	if r.funcs == nil {
		r.funcs = make(Funcs)
	}
	r.funcs[lowerASCII(name)] = fn
	return r
}

// WithFunc adds a function for compiling, overriding any built-in function of
// the same name. To hide a built-in function, pass nil for fn.
func WithFunc(name string, fn Func) Option {
	return &funcopt{name, fn}
}

func (o *funcopt) compileOption(r registry) registry {
	return r.set(o.name, o.fn)
}

// WithFuncs adds a table of functions for compiling. The table is copied;
// compiling never modifies it. Functions set to nil hide the built-in
// functions of those names.
func WithFuncs(fns Funcs) Option {
	return funcsopt(fns)
}

func (o funcsopt) compileOption(r registry) registry {
	for k, v := range o {
		r = r.set(k, v)
	}
	return r
}

// WithResolver sets a function to supply definitions for names which are not
// otherwise defined. The resolver is called at most once per name per
// compilation, and its results are not added to any table passed to
// WithFuncs. A later WithResolver replaces an earlier one.
func WithResolver(fn Resolver) Option {
	return resolveopt(fn)
}

func (o resolveopt) compileOption(r registry) registry {
	r.resolve = Resolver(o)
	return r
}

// DisableDefaultFuncs hides all built-in functions that are spelled as names,
// such as sin and pi. Operators, including negation and logical not, remain
// available.
func DisableDefaultFuncs() Option {
	return nodefaultsopt{}
}

func (nodefaultsopt) compileOption(r registry) registry {
	r.nodefaults = true
	return r
}
