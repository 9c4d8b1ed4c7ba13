package modelrest

// Option narrows which fields a schema generation or export covers.
type Option func(*config)

type config struct {
	include      []string
	exclude      []string
	withoutRules []string
}

// Include keeps only the named fields. An empty include keeps all.
func Include(names ...string) Option {
	return func(c *config) { c.include = append(c.include, names...) }
}

// Exclude drops the named fields. Exclusion wins over inclusion when a
// name appears in both.
func Exclude(names ...string) Option {
	return func(c *config) { c.exclude = append(c.exclude, names...) }
}

// WithoutRules suppresses the named rule kinds ("required", "readonly",
// "unique", "maxlength", "enum") during schema generation. The type
// rule cannot be suppressed. Export ignores this option.
func WithoutRules(kinds ...string) Option {
	return func(c *config) { c.withoutRules = append(c.withoutRules, kinds...) }
}

func buildConfig(opts []Option) config {
	var c config
	for _, o := range opts {
		o(&c)
	}
	return c
}

// selected applies the field-selection policy: the inclusion filter
// first, then exclusion, so exclusion always wins.
func (c *config) selected(name string) bool {
	if len(c.include) > 0 && !contains(c.include, name) {
		return false
	}
	return !contains(c.exclude, name)
}

func (c *config) ruleExcluded(kind string) bool {
	return contains(c.withoutRules, kind)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
