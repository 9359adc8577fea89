package styles

const (
	CheckIcon   string = "✓"
	ErrorIcon   string = "×"
	WarningIcon string = "⚠"
	InfoIcon    string = "ⓘ"
	HintIcon    string = "∵"
	LoadingIcon string = "⟳"

	BorderThin string = "│"
)
