package core

// Logger is any service that can log & report messages.
// args may contain errors, map[string]interface{} extras and a Person.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

// Person identifies the user a log entry relates to.
type Person interface {
	PersonInfo() (id, username, email string)
}
