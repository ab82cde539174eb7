package state

// CloneControls produces a shallow copy of the provided controls.
func CloneControls(controls []Control) []Control {
	if len(controls) == 0 {
		return nil
	}
	dup := make([]Control, len(controls))
	copy(dup, controls)
	return dup
}
