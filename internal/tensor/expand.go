package tensor

import (
	"github.com/pkg/errors"
)

// ExpandTo returns a view of x whose logical shape equals target, following
// broadcasting rules: stretched dimensions get stride 0 and share the source
// memory, so no data is copied.
//
// When x already has the target shape, x itself is returned. Callers rely on
// this: the no-expansion fast path incurs no allocation at all.
func ExpandTo(x *RawTensor, target Shape) (*RawTensor, error) {
	if x.shape.Equal(target) {
		return x, nil
	}

	if len(target) < len(x.shape) {
		return nil, errors.Wrapf(ErrIncompatibleShapes,
			"cannot expand %v to lower-rank shape %v", x.shape, target)
	}

	// Right-align the source shape against the target.
	offset := len(target) - len(x.shape)
	stride := make([]int, len(target))
	for i := range target {
		srcIdx := i - offset
		switch {
		case srcIdx < 0:
			stride[i] = 0
		case x.shape[srcIdx] == target[i]:
			stride[i] = x.stride[srcIdx]
		case x.shape[srcIdx] == 1:
			stride[i] = 0
		default:
			return nil, errors.Wrapf(ErrIncompatibleShapes,
				"cannot expand dimension %d from %d to %d (%v to %v)",
				srcIdx, x.shape[srcIdx], target[i], x.shape, target)
		}
	}

	return x.view(target, stride), nil
}
