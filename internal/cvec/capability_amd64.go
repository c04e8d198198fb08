//go:build amd64

package cvec

import "golang.org/x/sys/cpu"

func init() {
	useUnrolled = cpu.X86.HasAVX2 && cpu.X86.HasFMA
}
