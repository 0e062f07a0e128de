package placeholder

import (
	"log/slog"
	"strings"

	"github.com/robbyt/go-polytemplate/internal/helpers"
	"github.com/robbyt/go-polytemplate/platform/constants"
	"github.com/robbyt/go-polytemplate/platform/data"
)

// Lookup resolves top-level placeholder keys.
type Lookup interface {
	Root(name string) (any, data.Presence, error)
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithNullText substitutes text for keys that are present with a nil value
// and carry no default. Without it such keys behave as if they had no value.
func WithNullText(text string) Option {
	return func(r *Resolver) {
		r.nullText = &text
	}
}

// Resolver substitutes ${name} and ${name:default} tokens. It holds no
// per-call state and is safe for concurrent use.
type Resolver struct {
	nullText *string
	logger   *slog.Logger
}

// New creates a placeholder Resolver.
func New(handler slog.Handler, opts ...Option) *Resolver {
	_, logger := helpers.SetupLogger(handler, "placeholder", "Resolver")
	r := &Resolver{logger: logger}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Replace substitutes every placeholder in template. In strict mode a key
// without a value or default fails with *UnresolvedKeyError; in lenient mode
// the token is kept as written. When a substituted value itself contains a
// complete placeholder, the whole result is scanned exactly once more. An
// unterminated "${" that came from a substituted value stays literal text.
func (r *Resolver) Replace(template string, lookup Lookup, strict bool) (string, error) {
	logger := r.logger.WithGroup("Replace")

	out, rescan, err := r.replace(template, lookup, strict, false)
	if err != nil {
		return "", err
	}
	if !rescan {
		return out, nil
	}

	logger.Debug("re-scanning substituted value", "template", template, "intermediate", out)
	out, _, err = r.replace(out, lookup, strict, true)
	if err != nil {
		return "", err
	}
	return out, nil
}

// replace runs one scan over template. With literalOpen set an unterminated
// "${" is copied through instead of failing. Only the re-scan pass sets it.
func (r *Resolver) replace(template string, lookup Lookup, strict, literalOpen bool) (string, bool, error) {
	if !strings.Contains(template, constants.PlaceholderPrefix) {
		return template, false, nil
	}

	var b strings.Builder
	b.Grow(len(template))
	rescan := false
	pos := 0

	for {
		start := strings.Index(template[pos:], constants.PlaceholderPrefix)
		if start < 0 {
			b.WriteString(template[pos:])
			break
		}
		start += pos
		b.WriteString(template[pos:start])

		bodyStart := start + len(constants.PlaceholderPrefix)
		body, end, ok := scanBody(template[bodyStart:])
		if !ok {
			if literalOpen {
				b.WriteString(template[start:])
				break
			}
			return "", false, &data.SyntaxError{
				Template: template,
				Offset:   start,
				Msg:      "unterminated placeholder",
			}
		}
		tokenEnd := bodyStart + end
		fragment := template[start:tokenEnd]
		pos = tokenEnd

		key, def, hasDefault := strings.Cut(body, constants.DefaultSeparator)
		text, fromContext, found, err := r.value(lookup, key)
		if err != nil {
			return "", false, err
		}

		switch {
		case found && !fromContext && hasDefault:
			b.WriteString(def)
		case found:
			b.WriteString(text)
			if fromContext && hasToken(text) {
				rescan = true
			}
		case hasDefault:
			b.WriteString(def)
		case strict:
			return "", false, &UnresolvedKeyError{Key: key, Fragment: fragment, Template: template}
		default:
			b.WriteString(fragment)
		}
	}

	return b.String(), rescan, nil
}

// value returns the substitution text for key. fromContext is false when the
// text is the configured null text.
func (r *Resolver) value(lookup Lookup, key string) (text string, fromContext bool, found bool, err error) {
	if lookup == nil {
		return "", false, false, nil
	}
	v, presence, err := lookup.Root(key)
	if err != nil {
		return "", false, false, err
	}
	switch presence {
	case data.Present:
		return data.Stringify(v), true, true, nil
	case data.Null:
		if r.nullText != nil {
			return *r.nullText, false, true, nil
		}
	}
	return "", false, false, nil
}

// hasToken reports whether s holds at least one complete placeholder.
func hasToken(s string) bool {
	for pos := 0; ; {
		start := strings.Index(s[pos:], constants.PlaceholderPrefix)
		if start < 0 {
			return false
		}
		pos += start + len(constants.PlaceholderPrefix)
		if _, _, ok := scanBody(s[pos:]); ok {
			return true
		}
	}
}

// scanBody returns the unescaped placeholder body that starts s and the
// offset just past its closing brace. The body ends at the first '}' that
// is not preceded by a backslash.
func scanBody(s string) (string, int, bool) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\\' && i+1 < len(s) && s[i+1] == '}':
			b.WriteByte('}')
			i++
		case s[i] == '}':
			return b.String(), i + 1, true
		default:
			b.WriteByte(s[i])
		}
	}
	return "", 0, false
}
