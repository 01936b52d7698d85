package logger

// NopLogger discards everything. Handy for tests.
type NopLogger struct{}

func NewNopLogger() *NopLogger { return &NopLogger{} }

func (n *NopLogger) InitLogger()                                      {}
func (n *NopLogger) Debug(args ...interface{})                        {}
func (n *NopLogger) Debugf(template string, args ...interface{})      {}
func (n *NopLogger) Info(args ...interface{})                         {}
func (n *NopLogger) Infof(template string, args ...interface{})       {}
func (n *NopLogger) Warn(args ...interface{})                         {}
func (n *NopLogger) Warnf(template string, args ...interface{})       {}
func (n *NopLogger) Error(args ...interface{})                        {}
func (n *NopLogger) Errorf(template string, args ...interface{})      {}
func (n *NopLogger) DPanic(args ...interface{})                       {}
func (n *NopLogger) DPanicf(template string, args ...interface{})     {}
func (n *NopLogger) Fatal(args ...interface{})                        {}
func (n *NopLogger) Fatalf(template string, args ...interface{})      {}
