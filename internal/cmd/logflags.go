package cmd

// Log holds the logging flags shared by every command.
type Log struct {
	Level     string `help:"Log level" default:"info" enum:"trace,debug,info,warn,error" env:"PLANCK_LOG_LEVEL"`
	File      string `help:"Also write logs to this file" env:"PLANCK_LOG_FILE"`
	Format    string `help:"Log record format" default:"text" enum:"text,json" env:"PLANCK_LOG_FORMAT"`
	TraceFile string `help:"Write one line per processed transition to this file" env:"PLANCK_LOG_TRACE_FILE"`
}
