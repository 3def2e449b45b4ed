// Package shader compiles and links GLSL programs.
package shader

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Stage names a pipeline step for error reporting.
type Stage string

const (
	StageVertex   Stage = "vertex"
	StageFragment Stage = "fragment"
	StageLink     Stage = "link"
)

// CompileError carries the driver's info log for a failed stage.
type CompileError struct {
	Stage Stage
	Log   string
}

func (e *CompileError) Error() string {
	msg := strings.TrimRight(e.Log, "\x00 \r\n")
	if msg == "" {
		msg = "no info log"
	}
	return fmt.Sprintf("%s shader: %s", e.Stage, msg)
}

// CompileProgram compiles both stages and links them. The stage objects
// are released whether or not linking succeeds.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vs, err := compile(vertexSrc, gl.VERTEX_SHADER, StageVertex)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vs)

	fs, err := compile(fragmentSrc, gl.FRAGMENT_SHADER, StageFragment)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fs)

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &n)
		buf := infoBuffer(n)
		gl.GetProgramInfoLog(program, n, nil, &buf[0])
		gl.DeleteProgram(program)
		return 0, &CompileError{Stage: StageLink, Log: string(buf)}
	}
	return program, nil
}

func compile(source string, kind uint32, stage Stage) (uint32, error) {
	id := gl.CreateShader(kind)
	src, free := gl.Strs(source + "\x00")
	gl.ShaderSource(id, 1, src, nil)
	free()
	gl.CompileShader(id)

	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &n)
		buf := infoBuffer(n)
		gl.GetShaderInfoLog(id, n, nil, &buf[0])
		gl.DeleteShader(id)
		return 0, &CompileError{Stage: stage, Log: string(buf)}
	}
	return id, nil
}

// infoBuffer never returns an empty slice so &buf[0] is always valid.
func infoBuffer(n int32) []byte {
	if n < 1 {
		n = 1
	}
	return make([]byte, n)
}
