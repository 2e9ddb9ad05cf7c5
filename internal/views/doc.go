// Package views computes render-ready view models from the progress document
// and the catalogue. Nothing here touches storage; the terminal front end
// renders the results and turns user input into store calls.
package views

import "math"

// percent rounds n/total to a whole percentage. An empty total yields 0.
func percent(n, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(n) / float64(total) * 100))
}
