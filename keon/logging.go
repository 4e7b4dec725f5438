package keon

// Logger is the minimal diagnostic-tracing surface the parser and
// serializer call into when a caller opts in; *logrus.Logger satisfies it
// directly. Nil by default: a library must not log on a caller's behalf
// unless asked.
type Logger interface {
	Tracef(format string, args ...any)
}

// SetLogger installs l on p, enabling trace-level diagnostics (recursion
// depth, dispatch decisions) during the next parse driven by p.
func (p *Parser) SetLogger(l Logger) { p.logger = l }
