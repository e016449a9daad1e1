package inference

import (
	"github.com/chewxy/math32"
)

// Argmax returns the index of the largest logit. Ties resolve to the
// lowest index. NaN entries are skipped; an empty or all-NaN slice
// returns -1.
//
// The maximum is taken over raw logits. Softmax is neither computed nor
// required for selecting the predicted class.
func Argmax(logits []float32) int {
	idx := -1
	var best float32
	for i, v := range logits {
		if math32.IsNaN(v) {
			continue
		}
		if idx < 0 || v > best {
			idx, best = i, v
		}
	}
	return idx
}
