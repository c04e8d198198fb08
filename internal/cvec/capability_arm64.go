//go:build arm64

package cvec

import "golang.org/x/sys/cpu"

func init() {
	useUnrolled = cpu.ARM64.HasASIMD
}
