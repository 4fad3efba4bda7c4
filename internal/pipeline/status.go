package pipeline

// progressOf maps finished/total to a 0..100 percentage. Zero total means
// there is nothing left to do.
func progressOf(finished, total int) int {
	if total <= 0 {
		return 100
	}
	p := finished * 100 / total
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
