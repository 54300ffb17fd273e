package assert

import "fmt"

// True panics with `message` when `cond` is false, it guards invariants that
// only a programming error can break.
func True(cond bool, message string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("assertion failed: "+message, args...))
	}
}

func NotEmptyStr(str string, name string) {
	if str == "" {
		panic(fmt.Sprintf("assertion failed: %s is empty", name))
	}
}
