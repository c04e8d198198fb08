//go:build !amd64 && !arm64

package cvec

func init() {
	useUnrolled = false
}
