package input

// SetMaxFileSize lowers the size cap for tests and returns a restore
// function.
func SetMaxFileSize(n int64) func() {
	old := maxFileSize
	maxFileSize = n
	return func() { maxFileSize = old }
}
