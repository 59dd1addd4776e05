package mavcodec

// NotInitialized reports a Codec method called before Initialize has
// successfully loaded a dialect bundle.
type NotInitialized struct{}

func (e NotInitialized) Error() string { return "codec not initialized" }

func (e NotInitialized) Is(target error) bool {
	_, ok := target.(NotInitialized)
	return ok
}
