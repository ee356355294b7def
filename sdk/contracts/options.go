package contracts

// ClientOptions defines the configuration options for the MIDI output client.
type ClientOptions struct {
	Logger          Logger   // Logger for logging events and errors.
	LogLevel        LogLevel // Level of logging to use.
	Backend         string   // Name of the backend driving the MIDI subsystem.
	VirtualPortName string   // Name advertised when a virtual output port is created.
}

// Option is a function that modifies ClientOptions.
type Option func(*ClientOptions)

// WithLogger sets the logger for the MIDI client.
func WithLogger(l Logger) Option {
	return func(opts *ClientOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level for the MIDI client.
func WithLogLevel(level LogLevel) Option {
	return func(opts *ClientOptions) {
		opts.LogLevel = level
	}
}

// WithBackend selects the MIDI backend by name.
func WithBackend(name string) Option {
	return func(opts *ClientOptions) {
		opts.Backend = name
	}
}

// WithVirtualPortName sets the name used when a virtual output port is created.
func WithVirtualPortName(name string) Option {
	return func(opts *ClientOptions) {
		opts.VirtualPortName = name
	}
}
