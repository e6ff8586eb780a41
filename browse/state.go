package browse

type state int

const (
	listState state = iota
	previewState
	errorState
)
