package diffraction

// Logger is the logging surface the simulation writes to.
type Logger interface {
	Debugf(format string, v ...any)
	Infof(format string, v ...any)
	Warnf(format string, v ...any)
	Errorf(format string, v ...any)
}

// NoOpLogger discards every message.
type NoOpLogger struct{}

func (NoOpLogger) Debugf(format string, v ...any) {}
func (NoOpLogger) Infof(format string, v ...any)  {}
func (NoOpLogger) Warnf(format string, v ...any)  {}
func (NoOpLogger) Errorf(format string, v ...any) {}
