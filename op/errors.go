package op

import "errors"

var (
	// ErrNotConverged 达到迭代上限仍未收敛
	ErrNotConverged = errors.New("工作点未收敛")
	// ErrInvalidArgument 求解参数无效
	ErrInvalidArgument = errors.New("求解参数无效")
)
