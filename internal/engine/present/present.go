// Package present shows CPU rendered frames in the window by uploading them
// to a texture and drawing a fullscreen quad.
package present

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/derethmap/internal/engine/shader"
	"github.com/Faultbox/derethmap/internal/logger"
)

const vertexSrc = `
#version 410 core

layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aUV;

out vec2 vUV;

void main() {
	gl_Position = vec4(aPos, 0.0, 1.0);
	vUV = aUV;
}
`

const fragmentSrc = `
#version 410 core

in vec2 vUV;
out vec4 FragColor;

uniform sampler2D uFrame;

void main() {
	FragColor = texture(uFrame, vUV);
}
`

// quad covers clip space; image row 0 maps to the top of the window.
var quad = []float32{
	// pos      uv
	-1, -1, 0, 1,
	1, -1, 1, 1,
	-1, 1, 0, 0,
	1, 1, 1, 0,
}

// Presenter owns the GL objects used to show a frame.
type Presenter struct {
	program *shader.Program
	vao     uint32
	vbo     uint32
	texture uint32

	texWidth, texHeight int32
	width, height       int32
}

// New initializes OpenGL and creates the blit resources.
// Must be called after the OpenGL context is created.
func New(width, height int) (*Presenter, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	program, err := shader.CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("failed to create blit program: %w", err)
	}
	p := &Presenter{program: program}

	gl.GenVertexArrays(1, &p.vao)
	gl.BindVertexArray(p.vao)
	gl.GenBuffers(1, &p.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, gl.Ptr(quad), gl.STATIC_DRAW)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 4*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 4*4, unsafe.Pointer(uintptr(2*4)))
	gl.EnableVertexAttribArray(1)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	gl.GenTextures(1, &p.texture)
	gl.BindTexture(gl.TEXTURE_2D, p.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	program.Use()
	gl.Uniform1i(program.Uniform("uFrame"), 0)

	gl.Disable(gl.DEPTH_TEST)
	gl.ClearColor(29.0/255, 34.0/255, 60.0/255, 1)
	p.Resize(width, height)

	logger.Debug("presenter created",
		zap.Uint32("vao", p.vao),
		zap.Uint32("texture", p.texture))
	return p, nil
}

// Resize handles window resize.
func (p *Presenter) Resize(width, height int) {
	p.width, p.height = int32(width), int32(height)
	gl.Viewport(0, 0, p.width, p.height)
	logger.Debug("presenter resized", zap.Int("width", width), zap.Int("height", height))
}

// Draw uploads frame and draws it over the whole window.
func (p *Presenter) Draw(frame *image.RGBA) {
	gl.Clear(gl.COLOR_BUFFER_BIT)
	if frame == nil {
		return
	}

	b := frame.Bounds()
	w, h := int32(b.Dx()), int32(b.Dy())
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, p.texture)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(frame.Stride/4))
	if w != p.texWidth || h != p.texHeight {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(frame.Pix))
		p.texWidth, p.texHeight = w, h
	} else {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, w, h, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(frame.Pix))
	}
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)

	p.program.Use()
	gl.BindVertexArray(p.vao)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)
}

// Close releases GL resources.
func (p *Presenter) Close() {
	logger.Info("closing presenter")
	if p.texture != 0 {
		gl.DeleteTextures(1, &p.texture)
	}
	if p.vbo != 0 {
		gl.DeleteBuffers(1, &p.vbo)
	}
	if p.vao != 0 {
		gl.DeleteVertexArrays(1, &p.vao)
	}
	p.program.Delete()
}
