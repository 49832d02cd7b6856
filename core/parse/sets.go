package parse

// Fixed lookup tables, built once at init and never mutated.

// wrapperCommands are programs whose role is to invoke another program.
// They are transparent to extraction: the wrapped command is the one of
// interest within a segment.
var wrapperCommands = map[string]struct{}{
	"sudo": {}, "doas": {}, // privilege escalation
	"env":                {}, // environment modification
	"time": {}, "timeout": {}, // timing
	"nohup": {}, "setsid": {}, // process control
	"nice": {}, "ionice": {}, "chrt": {}, // priority
	"strace": {}, "ltrace": {}, // tracing
	"watch":      {}, // repeated execution
	"xargs":      {}, // argument passing
	"exec":       {}, // replace shell
	"command":    {}, // bypass aliases
	"builtin":    {}, // force builtin
	"caffeinate": {}, // macOS keep-awake
}

// shellBuiltins are shell-internal operations, not external programs.
var shellBuiltins = map[string]struct{}{
	"cd": {}, "pwd": {}, "echo": {}, "printf": {}, "read": {},
	"export": {}, "unset": {}, "set": {},
	"source": {}, ".": {},
	"alias": {}, "unalias": {},
	"type": {}, "which": {}, "where": {},
	"true": {}, "false": {}, ":": {},
	"test": {}, "[": {}, "[[": {},
	"break": {}, "continue": {}, "return": {}, "exit": {},
	"shift": {}, "getopts": {},
	"local": {}, "declare": {}, "typeset": {},
	"eval": {}, "exec": {},
	"trap": {}, "wait": {}, "jobs": {}, "fg": {}, "bg": {},
	"pushd": {}, "popd": {}, "dirs": {},
	"history": {}, "fc": {},
	"umask": {}, "ulimit": {},
	"enable": {}, "disable": {},
	"shopt": {}, "complete": {}, "compgen": {},
	"let": {}, "((": {},
}

// controlKeywords are shell control-structure words.
var controlKeywords = map[string]struct{}{
	"if": {}, "then": {}, "else": {}, "elif": {}, "fi": {},
	"case": {}, "esac": {},
	"for": {}, "while": {}, "until": {}, "do": {}, "done": {},
	"select": {}, "in": {},
	"function": {},
	"{":        {}, "}": {},
}

// IsWrapper reports whether name is a known wrapper command.
func IsWrapper(name string) bool {
	_, ok := wrapperCommands[name]
	return ok
}

// IsBuiltin reports whether name is a shell builtin.
func IsBuiltin(name string) bool {
	_, ok := shellBuiltins[name]
	return ok
}

// IsControlKeyword reports whether name is a shell control keyword.
func IsControlKeyword(name string) bool {
	_, ok := controlKeywords[name]
	return ok
}
