package tui

import (
	"github.com/interpretive-systems/playpen/internal/wasmrun"
)

// wasmRunMsg carries the result of running a build artifact. seq ties it
// to the compile resolution that produced the artifact.
type wasmRunMsg struct {
	seq    uint64
	result wasmrun.Result
	err    error
}
