package resource

// Result is the uniform shape every mutation resolves to; hooks never let an
// error escape past their boundary.
type Result struct {
	Success bool
	Error   string
}

func succeeded() Result {
	return Result{Success: true}
}

func failed(err error) Result {
	return Result{Error: err.Error()}
}
