// Package gui implements the SDL based window, rendering and keyboard input.
package gui

import (
	"fmt"

	"github.com/retroenv/chip8go/internal/chip8"
	"github.com/veandco/go-sdl2/sdl"
)

const bytesPerPixel = 4

// pixel colors in RGB order, a dark grey background instead of pure
// black reduces contrast flicker of XOR drawing.
var (
	colorOn  = [3]byte{0xFF, 0xFF, 0xFF}
	colorOff = [3]byte{0x1A, 0x1A, 0x1A}
)

// Window presents the VM display in an SDL window and collects keyboard
// input for the keypad.
type Window struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	pixels []byte // framebuffer staging buffer in ABGR8888 layout
	keys   [chip8.KeyCount]bool
}

// New initializes SDL and opens a window scaled by the given integer factor.
func New(title string, scale int) (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("initializing SDL: %w", err)
	}

	window, err := sdl.CreateWindow(title,
		int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED),
		int32(chip8.DisplayWidth*scale), int32(chip8.DisplayHeight*scale),
		uint32(sdl.WINDOW_SHOWN))
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1,
		uint32(sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC))
	if err != nil {
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	// the texture stays at native resolution, the renderer scales it to
	// the window size on copy
	texture, err := renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ABGR8888),
		int(sdl.TEXTUREACCESS_STREAMING),
		int32(chip8.DisplayWidth), int32(chip8.DisplayHeight))
	if err != nil {
		return nil, fmt.Errorf("creating texture: %w", err)
	}

	return &Window{
		window:   window,
		renderer: renderer,
		texture:  texture,
		pixels:   make([]byte, chip8.DisplayWidth*chip8.DisplayHeight*bytesPerPixel),
	}, nil
}

// PollEvents processes all pending window and keyboard events and updates
// the keypad snapshot. It returns false when the user closed the window or
// pressed escape.
func (w *Window) PollEvents() bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch ev := event.(type) {
		case *sdl.QuitEvent:
			return false

		case *sdl.KeyboardEvent:
			if ev.Repeat != 0 {
				continue
			}
			if ev.Keysym.Scancode == sdl.SCANCODE_ESCAPE {
				if ev.Type == sdl.KEYDOWN {
					return false
				}
				continue
			}
			key, ok := keymap[ev.Keysym.Scancode]
			if !ok {
				continue
			}
			w.keys[key] = ev.Type == sdl.KEYDOWN
		}
	}
	return true
}

// Keys returns the current keypad state.
func (w *Window) Keys() [chip8.KeyCount]bool {
	return w.keys
}

// Render converts the VM display to pixel data and presents it.
func (w *Window) Render(display *chip8.Display) error {
	for y := range chip8.DisplayHeight {
		for x := range chip8.DisplayWidth {
			color := colorOff
			if display.Pixel(x, y) {
				color = colorOn
			}

			offset := (y*chip8.DisplayWidth + x) * bytesPerPixel
			w.pixels[offset] = color[0]
			w.pixels[offset+1] = color[1]
			w.pixels[offset+2] = color[2]
			w.pixels[offset+3] = 0xFF
		}
	}

	if err := w.texture.Update(nil, w.pixels, chip8.DisplayWidth*bytesPerPixel); err != nil {
		return fmt.Errorf("updating texture: %w", err)
	}
	if err := w.renderer.Copy(w.texture, nil, nil); err != nil {
		return fmt.Errorf("copying texture: %w", err)
	}
	w.renderer.Present()
	return nil
}

// Close destroys all SDL resources.
func (w *Window) Close() {
	if w.texture != nil {
		_ = w.texture.Destroy()
	}
	if w.renderer != nil {
		_ = w.renderer.Destroy()
	}
	if w.window != nil {
		_ = w.window.Destroy()
	}
	sdl.Quit()
}
