package capture

// Mode selects how rendering options are obtained for one capture.
type Mode int

const (
	// ModePlain renders with the process-wide defaults untouched.
	ModePlain Mode = iota

	// ModePrompt collects the common options interactively, each prompt
	// defaulting to the process-wide configuration.
	ModePrompt

	// ModeEdit presents the assembled flag string for free editing and
	// asks for an explicit output path.
	ModeEdit
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModePlain:
		return "plain"
	case ModePrompt:
		return "prompt"
	case ModeEdit:
		return "edit"
	default:
		return "unknown"
	}
}

// ModeFromRepeat maps the host's repeated-invocation count to a mode:
// zero means plain, one means prompt, two or more means edit.
func ModeFromRepeat(n int) Mode {
	switch {
	case n <= 0:
		return ModePlain
	case n == 1:
		return ModePrompt
	default:
		return ModeEdit
	}
}
