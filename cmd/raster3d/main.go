// raster3d - terminal viewer for the CPU software rasterizer core.
// Spins a procedural cube, or a loaded GLTF/GLB model, in your terminal.
//
// Controls:
//
//	Mouse drag  - rotate the model
//	Scroll      - zoom in/out
//	W/S/A/D     - pitch and yaw
//	Q/E         - roll left/right
//	Space       - random spin impulse
//	R           - reset view
//	T           - toggle texture
//	X           - toggle wireframe
//	C           - toggle backface culling
//	?           - toggle HUD overlay
//	Esc         - quit
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/mini3dgo/raster3d/pkg/math3d"
	"github.com/mini3dgo/raster3d/pkg/mesh"
	"github.com/mini3dgo/raster3d/pkg/raster"
)

var (
	texturePath = flag.String("texture", "", "Path to a texture image (PNG/JPEG) to use instead of the model's own")
	targetFPS   = flag.Int("fps", 60, "Target frames per second")
	bgColor     = flag.String("bg", "30,30,40", "Background color as R,G,B")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "raster3d - terminal viewer for the CPU software rasterizer core\n\n")
		fmt.Fprintf(os.Stderr, "Usage: raster3d [options] [model.glb|model.gltf]\n\n")
		fmt.Fprintf(os.Stderr, "With no model, a procedural cube is shown.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Mouse drag  - rotate\n")
		fmt.Fprintf(os.Stderr, "  Scroll      - zoom\n")
		fmt.Fprintf(os.Stderr, "  W/S/A/D     - pitch/yaw\n")
		fmt.Fprintf(os.Stderr, "  Q/E         - roll\n")
		fmt.Fprintf(os.Stderr, "  Space       - random spin\n")
		fmt.Fprintf(os.Stderr, "  R           - reset view\n")
		fmt.Fprintf(os.Stderr, "  T           - toggle texture\n")
		fmt.Fprintf(os.Stderr, "  X           - toggle wireframe\n")
		fmt.Fprintf(os.Stderr, "  C           - toggle backface culling\n")
		fmt.Fprintf(os.Stderr, "  ?           - toggle HUD\n")
		fmt.Fprintf(os.Stderr, "  Esc         - quit\n")
	}
	flag.Parse()

	modelPath := ""
	if flag.NArg() > 0 {
		modelPath = flag.Arg(0)
	}

	if err := run(modelPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// RotationAxis tracks position and velocity for one rotation axis, with
// a critically damped spring decaying velocity back to zero so releasing
// a drag or key glides to a stop instead of snapping.
type RotationAxis struct {
	Position  float64
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64
}

func NewRotationAxis(fps int) RotationAxis {
	return RotationAxis{velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0)}
}

func (a *RotationAxis) Update() {
	a.Position += a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
}

// RotationState holds pitch/yaw/roll, each with its own spring decay.
type RotationState struct {
	Pitch, Yaw, Roll RotationAxis
	fps              int
}

func NewRotationState(fps int) *RotationState {
	return &RotationState{
		Pitch: NewRotationAxis(fps),
		Yaw:   NewRotationAxis(fps),
		Roll:  NewRotationAxis(fps),
		fps:   fps,
	}
}

func (r *RotationState) Update() {
	r.Pitch.Update()
	r.Yaw.Update()
	r.Roll.Update()
}

func (r *RotationState) ApplyImpulse(pitch, yaw, roll float64) {
	r.Pitch.Velocity += pitch
	r.Yaw.Velocity += yaw
	r.Roll.Velocity += roll
}

func (r *RotationState) Reset() {
	r.Pitch = NewRotationAxis(r.fps)
	r.Yaw = NewRotationAxis(r.fps)
	r.Roll = NewRotationAxis(r.fps)
}

// ViewState holds the render-state toggles the user can flip at runtime.
type ViewState struct {
	TextureEnabled bool
	Wireframe      bool
	CullBackfaces  bool
	ShowHUD        bool
}

func NewViewState() *ViewState {
	return &ViewState{TextureEnabled: true, CullBackfaces: true, ShowHUD: true}
}

// renderState maps the toggles onto the core's bitmask.
func (v *ViewState) renderState() int {
	state := 0
	if v.Wireframe {
		state |= raster.Wireframe
	}
	if v.TextureEnabled {
		state |= raster.TextureState
	} else {
		state |= raster.ColorState
	}
	if v.CullBackfaces {
		state |= raster.CCWCulling
	}
	return state
}

// HUD renders a status overlay with raw ANSI positioning, matching the
// manual cursor-addressing style the rest of this command already uses
// for the framebuffer itself.
type HUD struct {
	filename  string
	polyCount int
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

func NewHUD(filename string, polyCount int) *HUD {
	return &HUD{filename: filename, polyCount: polyCount, fpsTime: time.Now()}
}

func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

func (h *HUD) Render(cols, rows int, view *ViewState) string {
	const (
		reset   = "\x1b[0m"
		bold    = "\x1b[1m"
		bgBlack = "\x1b[40m"
		fgWhite = "\x1b[97m"
		fgGreen = "\x1b[92m"
		fgCyan  = "\x1b[96m"
		clear   = "\x1b[2K"
	)
	moveTo := func(row, col int) string { return fmt.Sprintf("\x1b[%d;%dH", row, col) }

	var b strings.Builder
	b.WriteString(moveTo(1, 1) + clear)
	b.WriteString(moveTo(rows, 1) + clear)
	if !view.ShowHUD {
		return b.String()
	}

	fmt.Fprintf(&b, "%s%s%s %.0f FPS %s", moveTo(1, 1), bgBlack, fgGreen, h.fps, reset)

	title := fmt.Sprintf("%s%s %s %s", bold, bgBlack+fgWhite, h.filename, reset)
	titleCol := max((cols-len(h.filename)-2)/2, 1)
	b.WriteString(moveTo(1, titleCol) + title)

	polyCol := max(cols-14, 1)
	fmt.Fprintf(&b, "%s%s%s%s %d polys %s", moveTo(1, polyCol), bgBlack, fgCyan, bold, h.polyCount, reset)

	checkTex, checkWire, checkCull := "[ ]", "[ ]", "[ ]"
	if view.TextureEnabled {
		checkTex = "[✓]"
	}
	if view.Wireframe {
		checkWire = "[✓]"
	}
	if view.CullBackfaces {
		checkCull = "[✓]"
	}
	fmt.Fprintf(&b, "%s%s%s %s Texture  %s Wireframe  %s Cull %s",
		moveTo(rows, 1), bgBlack, fgWhite, checkTex, checkWire, checkCull, reset)
	return b.String()
}

func run(modelPath string) error {
	var bgR, bgG, bgB uint8 = 30, 30, 40
	fmt.Sscanf(*bgColor, "%d,%d,%d", &bgR, &bgG, &bgB)
	background := raster.RGB(float64(bgR)/255, float64(bgG)/255, float64(bgB)/255)

	term := uv.DefaultTerminal()
	cols, rows, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(cols, rows)

	fmt.Fprint(os.Stdout, "\x1b[?1003h\x1b[?1006h")

	newDevice := func(cols, rows int) *raster.Device {
		// raster.New only errors on non-positive dimensions; a live
		// terminal size never reaches here as zero.
		dev, _ := raster.New(cols, rows*2)
		dev.Background = background.Pack()
		return dev
	}
	dev := newDevice(cols, rows)

	var texImg image.Image
	if *texturePath != "" {
		f, openErr := os.Open(*texturePath)
		if openErr != nil {
			return fmt.Errorf("open texture: %w", openErr)
		}
		texImg, _, err = image.Decode(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("decode texture: %w", err)
		}
	}

	var m *mesh.Mesh
	displayName := "cube"
	if modelPath == "" {
		m = newCube()
	} else {
		ext := strings.ToLower(filepath.Ext(modelPath))
		if ext != ".glb" && ext != ".gltf" {
			return fmt.Errorf("unsupported model format: %s (use .glb or .gltf)", ext)
		}
		var embedded image.Image
		m, embedded, err = mesh.LoadGLBWithTexture(modelPath)
		if err != nil {
			return fmt.Errorf("load model: %w", err)
		}
		if texImg == nil {
			texImg = embedded
		}
		displayName = filepath.Base(modelPath)
	}

	if texImg != nil {
		dev.SetTextureImage(raster.TextureFromImage(texImg))
	}

	center := m.Center()
	size := m.Size()
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
	if maxDim > 0 {
		scale := 2.0 / maxDim
		m.Transform(math3d.Mul(math3d.Translate(-center.X, -center.Y, -center.Z), math3d.Scale(scale, scale, scale)))
	}

	hud := NewHUD(displayName, m.TriangleCount())
	rotation := NewRotationState(*targetFPS)
	view := NewViewState()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	var inputTorque struct{ pitch, yaw, roll float64 }
	const torqueStrength = 3.0
	var mouseDown bool
	var lastMouseX, lastMouseY int
	cameraZ := 5.0

	eye := func() math3d.Vector { return math3d.Point(0, 0, cameraZ) }
	dev.Transform.View = math3d.LookAt(eye(), math3d.Point(0, 0, 0), math3d.Dir(0, 1, 0))

	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				cols, rows = ev.Width, ev.Height
				term.Erase()
				term.Resize(cols, rows)
				dev = newDevice(cols, rows)

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
					cancel()
					return
				case ev.MatchString("q"):
					inputTorque.roll = -torqueStrength
				case ev.MatchString("e"):
					inputTorque.roll = torqueStrength
				case ev.MatchString("w", "up"):
					inputTorque.pitch = -torqueStrength
				case ev.MatchString("s", "down"):
					inputTorque.pitch = torqueStrength
				case ev.MatchString("a", "left"):
					inputTorque.yaw = -torqueStrength
				case ev.MatchString("d", "right"):
					inputTorque.yaw = torqueStrength
				case ev.MatchString("r"):
					rotation.Reset()
					cameraZ = 5.0
				case ev.MatchString("space"):
					rotation.ApplyImpulse((rand.Float64()-0.5)*1.5, (rand.Float64()-0.5)*1.5, (rand.Float64()-0.5)*1.5)
				case ev.MatchString("t"):
					view.TextureEnabled = !view.TextureEnabled
				case ev.MatchString("x"):
					view.Wireframe = !view.Wireframe
				case ev.MatchString("c"):
					view.CullBackfaces = !view.CullBackfaces
				case ev.MatchString("+", "="):
					cameraZ = math.Max(1, cameraZ-0.5)
				case ev.MatchString("-", "_"):
					cameraZ = math.Min(20, cameraZ+0.5)
				case ev.MatchString("?"), ev.MatchString("shift+/"):
					view.ShowHUD = !view.ShowHUD
				}

			case uv.KeyReleaseEvent:
				switch {
				case ev.MatchString("w"), ev.MatchString("up"), ev.MatchString("s"), ev.MatchString("down"):
					inputTorque.pitch = 0
				case ev.MatchString("a"), ev.MatchString("left"), ev.MatchString("d"), ev.MatchString("right"):
					inputTorque.yaw = 0
				case ev.MatchString("q"), ev.MatchString("e"):
					inputTorque.roll = 0
				}

			case uv.MouseClickEvent:
				mouseDown = true
				lastMouseX, lastMouseY = ev.X, ev.Y

			case uv.MouseReleaseEvent:
				mouseDown = false

			case uv.MouseMotionEvent:
				if mouseDown {
					dx := ev.X - lastMouseX
					dy := ev.Y - lastMouseY
					rotation.ApplyImpulse(float64(dy)*0.03, float64(dx)*0.03, 0)
					lastMouseX, lastMouseY = ev.X, ev.Y
				}

			case uv.MouseWheelEvent:
				switch ev.Button {
				case uv.MouseWheelUp:
					cameraZ = math.Max(1, cameraZ-0.5)
				case uv.MouseWheelDown:
					cameraZ = math.Min(20, cameraZ+0.5)
				}
			}
		}
	}()

	targetDuration := time.Second / time.Duration(*targetFPS)
	lastFrame := time.Now()
	lightDir := math3d.Dir(0.3, -0.5, -1).Normalize()

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		now := time.Now()
		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now
		if dt > 0.1 {
			dt = 0.1
		}

		rotation.ApplyImpulse(inputTorque.pitch*dt, inputTorque.yaw*dt, inputTorque.roll*dt)
		inputTorque.pitch *= 0.9
		inputTorque.yaw *= 0.9
		inputTorque.roll *= 0.9
		rotation.Update()

		dev.Transform.World = math3d.Mul(math3d.Mul(
			math3d.Rotate(1, 0, 0, rotation.Pitch.Position),
			math3d.Rotate(0, 1, 0, rotation.Yaw.Position)),
			math3d.Rotate(0, 0, 1, rotation.Roll.Position))
		dev.Transform.View = math3d.LookAt(eye(), math3d.Point(0, 0, 0), math3d.Dir(0, 1, 0))
		dev.Transform.Update()
		dev.RenderState = view.renderState()

		dev.Clear(0)
		mesh.DrawMesh(dev, m, lightDir, raster.White)

		fmt.Fprint(os.Stdout, halfBlockFrame(dev))
		hud.UpdateFPS()
		fmt.Fprint(os.Stdout, hud.Render(cols, rows, view))

		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
