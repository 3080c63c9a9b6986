package ui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chasenunez/orbital-trajectories/internal/astro"
	"github.com/chasenunez/orbital-trajectories/internal/scene"
	"github.com/chasenunez/orbital-trajectories/internal/state"
)

// LabelMode controls which body labels are drawn on the canvas.
type LabelMode int

const (
	LabelNone LabelMode = iota
	LabelFocused
	LabelAll
)

// OrbitModel renders a top-down ecliptic view of the scene at the current
// time index.
type OrbitModel struct {
	width    int
	height   int
	snapshot state.Snapshot

	// View state. Focus moves between objects via discrete key events;
	// focusIdx == -1 means the Sun.
	focusIdx   int
	zoomLevel  int
	panX       float64
	panY       float64
	scaleMode  astro.ScaleMode
	labelMode  LabelMode
	userPanned bool
}

// Discrete zoom levels for clean stepping.
var zoomLevels = []float64{0.25, 0.5, 0.75, 1.0, 1.5, 2.0, 3.0, 5.0, 10.0}

// NewOrbitModel creates the orbit view.
func NewOrbitModel() OrbitModel {
	return OrbitModel{
		focusIdx:  -1,
		zoomLevel: 3, // 1.0x
		scaleMode: astro.ScaleLogR,
		labelMode: LabelFocused,
	}
}

func (m OrbitModel) scale() float64 {
	if m.zoomLevel < 0 || m.zoomLevel >= len(zoomLevels) {
		return 1.0
	}
	return zoomLevels[m.zoomLevel]
}

// SetSize updates the viewport size.
func (m OrbitModel) SetSize(width, height int) OrbitModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData installs a fresh state snapshot.
func (m OrbitModel) UpdateData(snapshot state.Snapshot) OrbitModel {
	m.snapshot = snapshot
	return m
}

// Update handles input messages.
func (m OrbitModel) Update(msg tea.Msg) (OrbitModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "[":
			m.focusPrev()
		case "k", "]":
			m.focusNext()

		case "up":
			m.panY -= 0.1 / m.scale()
			m.userPanned = true
		case "down":
			m.panY += 0.1 / m.scale()
			m.userPanned = true
		case "left":
			m.panX -= 0.1 / m.scale()
			m.userPanned = true
		case "right":
			m.panX += 0.1 / m.scale()
			m.userPanned = true
		case "c":
			m.panX, m.panY = 0, 0
			m.userPanned = false

		case "f":
			m.centerOnFocused()
			m.userPanned = false

		case "+", "=":
			if m.zoomLevel < len(zoomLevels)-1 {
				m.zoomLevel++
				if !m.userPanned {
					m.centerOnFocused()
				}
			}
		case "-":
			if m.zoomLevel > 0 {
				m.zoomLevel--
				if !m.userPanned {
					m.centerOnFocused()
				}
			}
		case "0":
			m.zoomLevel = 3
			if !m.userPanned {
				m.centerOnFocused()
			}

		case "z":
			m.scaleMode = (m.scaleMode + 1) % 3
			if !m.userPanned {
				m.centerOnFocused()
			}

		case "l":
			m.labelMode = (m.labelMode + 1) % 3

		case "r":
			m.panX, m.panY = 0, 0
			m.zoomLevel = 3
			m.userPanned = false
		}
	}
	return m, nil
}

func (m *OrbitModel) objectCount() int {
	if m.snapshot.Scene == nil {
		return 0
	}
	return len(m.snapshot.Scene.Objects)
}

func (m *OrbitModel) focusNext() {
	n := m.objectCount()
	if n == 0 {
		return
	}
	m.focusIdx++
	if m.focusIdx >= n {
		m.focusIdx = -1 // wrap to Sun
	}
	m.centerOnFocused()
	m.userPanned = false
}

func (m *OrbitModel) focusPrev() {
	n := m.objectCount()
	if n == 0 {
		return
	}
	m.focusIdx--
	if m.focusIdx < -1 {
		m.focusIdx = n - 1
	}
	m.centerOnFocused()
	m.userPanned = false
}

// FocusedObject returns the focused object, or nil for the Sun.
func (m OrbitModel) FocusedObject() *scene.Object {
	if m.snapshot.Scene == nil || m.focusIdx < 0 || m.focusIdx >= m.objectCount() {
		return nil
	}
	return &m.snapshot.Scene.Objects[m.focusIdx]
}

// focusedPositionAU returns the focused object's position in AU at the
// current time index, and whether it has data there.
func (m *OrbitModel) focusedPositionAU() (astro.Vec3, bool) {
	obj := m.FocusedObject()
	if obj == nil {
		return astro.Vec3{}, false
	}
	i := m.snapshot.TimeIndex
	if !obj.HasDataAt(i) {
		return astro.Vec3{}, false
	}
	pos := astro.Vec3{X: obj.X[i], Y: obj.Y[i], Z: obj.Z[i]}
	if math.IsNaN(pos.Z) {
		pos.Z = 0
	}
	return pos.Scale(1 / astro.AU), true
}

func (m *OrbitModel) centerOnFocused() {
	pos, ok := m.focusedPositionAU()
	if !ok {
		m.panX, m.panY = 0, 0
		return
	}
	cfg := astro.ProjectionConfig{Scale: m.scale(), Mode: m.scaleMode}
	proj := astro.ProjectEclipticTopDown(pos, cfg)
	m.panX = -proj.X
	m.panY = -proj.Y
}

// View renders the orbit view.
func (m OrbitModel) View() string {
	if m.width < 40 || m.height < 10 {
		return "Terminal too small for orbit view"
	}
	if m.snapshot.Scene == nil {
		return "No scene loaded"
	}

	canvas := m.buildCanvas()
	hud := m.renderHUD()
	return lipgloss.JoinVertical(lipgloss.Left, canvas, hud)
}

// objectPos tracks an object's screen position for label rendering.
type objectPos struct {
	x, y      int
	name      string
	color     string
	isFocused bool
	isSun     bool
}

func (m OrbitModel) buildCanvas() string {
	canvasH := m.height - 5
	if canvasH < 5 {
		canvasH = 5
	}
	canvasW := m.width

	grid := make([][]rune, canvasH)
	for y := range grid {
		grid[y] = make([]rune, canvasW)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}
	colorAt := make(map[[2]int]string)

	screenCenterX := canvasW / 2
	screenCenterY := canvasH / 2

	cfg := astro.ProjectionConfig{Scale: m.scale(), Mode: m.scaleMode}

	// Map ~log10(30 AU + 1) of display distance into 90% of the half-canvas.
	// Zoom is already applied once inside the projection config.
	maxDisplayR := float64(minInt(screenCenterX, screenCenterY*2)) * 0.9
	displayScale := maxDisplayR / 1.5

	originX := screenCenterX + int(m.panX*displayScale)
	originY := screenCenterY - int(m.panY*displayScale)

	m.drawOrbitRings(grid, originX, originY, displayScale, cfg)

	var positions []objectPos
	timeIdx := m.snapshot.TimeIndex

	for i := range m.snapshot.Scene.Objects {
		obj := &m.snapshot.Scene.Objects[i]
		if !obj.HasDataAt(timeIdx) {
			continue
		}
		z := obj.Z[timeIdx]
		if math.IsNaN(z) {
			z = 0
		}
		posAU := astro.Vec3{X: obj.X[timeIdx], Y: obj.Y[timeIdx], Z: z}.Scale(1 / astro.AU)
		proj := astro.ProjectEclipticTopDown(posAU, cfg)

		sx := originX + int(proj.X*displayScale)
		sy := originY - int(proj.Y*displayScale*0.5) // terminal cell aspect ratio

		if sx < 0 || sx >= canvasW || sy < 0 || sy >= canvasH {
			continue
		}

		focused := i == m.focusIdx
		grid[sy][sx] = objectGlyph(obj, focused)
		colorAt[[2]int{sx, sy}] = obj.Color

		positions = append(positions, objectPos{
			x:         sx,
			y:         sy,
			name:      obj.ID,
			color:     obj.Color,
			isFocused: focused,
		})
	}

	// Sun last so it stays visible at the origin.
	if originX >= 0 && originX < canvasW && originY >= 0 && originY < canvasH {
		grid[originY][originX] = '☉'
		positions = append(positions, objectPos{
			x:         originX,
			y:         originY,
			name:      "Sun",
			isFocused: m.focusIdx == -1,
			isSun:     true,
		})
	}

	m.renderLabels(grid, canvasW, canvasH, positions)

	return m.renderGrid(grid, colorAt)
}

func (m OrbitModel) drawOrbitRings(grid [][]rune, cx, cy int, scale float64, cfg astro.ProjectionConfig) {
	// Reference circles: Earth, Jupiter, Saturn, Uranus, Neptune, Kuiper belt.
	for _, au := range []float64{1, 5, 10, 20, 30, 45} {
		proj := astro.ProjectEclipticTopDown(astro.Vec3{X: au}, cfg)
		m.drawCircle(grid, cx, cy, proj.X*scale)
	}
}

func (m OrbitModel) drawCircle(grid [][]rune, cx, cy int, r float64) {
	if r < 1 {
		return
	}
	h := len(grid)
	w := len(grid[0])

	steps := int(2 * math.Pi * r)
	if steps < 8 {
		steps = 8
	}
	if steps > 360 {
		steps = 360
	}
	for i := 0; i < steps; i++ {
		theta := 2 * math.Pi * float64(i) / float64(steps)
		x := cx + int(r*math.Cos(theta))
		y := cy - int(r*math.Sin(theta)*0.5)
		if x >= 0 && x < w && y >= 0 && y < h && grid[y][x] == ' ' {
			grid[y][x] = '·'
		}
	}
}

// objectGlyph picks a glyph by diameter so physically large bodies stand out.
func objectGlyph(obj *scene.Object, focused bool) rune {
	if focused {
		return '◉'
	}
	switch {
	case obj.DiameterKm >= 1000:
		return '●'
	case obj.DiameterKm >= 100:
		return '•'
	case obj.DiameterKm > 0:
		return '∘'
	default:
		return '∘' // unknown diameter
	}
}

func (m OrbitModel) renderLabels(grid [][]rune, width, height int, positions []objectPos) {
	if m.labelMode == LabelNone || len(positions) == 0 {
		return
	}

	for _, pos := range positions {
		show := false
		switch m.labelMode {
		case LabelFocused:
			show = pos.isFocused
		case LabelAll:
			show = true
		}
		if !show {
			continue
		}

		labelX := pos.x + 2
		labelY := pos.y
		if labelY < 0 || labelY >= height || labelX >= width {
			continue
		}

		text := pos.name
		if pos.isFocused {
			text = "◄ " + pos.name
		}
		for i, r := range text {
			x := labelX + i
			if x >= width {
				break
			}
			if grid[labelY][x] == ' ' || grid[labelY][x] == '·' {
				grid[labelY][x] = r
			}
		}
	}
}

func (m OrbitModel) renderGrid(grid [][]rune, colorAt map[[2]int]string) string {
	var b strings.Builder

	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	sunStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	focusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("249"))

	for y, row := range grid {
		for x, ch := range row {
			switch ch {
			case ' ':
				b.WriteRune(ch)
				continue
			case '·':
				b.WriteString(dimStyle.Render(string(ch)))
			case '☉':
				b.WriteString(sunStyle.Render(string(ch)))
			case '◉', '◄':
				b.WriteString(focusStyle.Render(string(ch)))
			case '●', '•', '∘':
				style := labelStyle
				if c, ok := colorAt[[2]int{x, y}]; ok && c != "" {
					style = lipgloss.NewStyle().Foreground(lipgloss.Color(c))
				}
				b.WriteString(style.Render(string(ch)))
			default:
				b.WriteString(labelStyle.Render(string(ch)))
			}
		}
		b.WriteRune('\n')
	}
	return b.String()
}

func (m OrbitModel) renderHUD() string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Width(12)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	focused := m.FocusedObject()
	timeIdx := m.snapshot.TimeIndex

	if focused != nil {
		b.WriteString(headerStyle.Render("◉ " + focused.ID))
		b.WriteString("  ")
		if pos, ok := m.focusedPositionAU(); ok {
			b.WriteString(labelStyle.Render("Distance:"))
			b.WriteString(valueStyle.Render(fmt.Sprintf("%.3f AU", pos.Norm())))
			b.WriteString("  ")
			b.WriteString(labelStyle.Render("Ecl Lon:"))
			b.WriteString(valueStyle.Render(fmt.Sprintf("%.1f°", astro.EclipticLongitude(pos))))
			b.WriteString("  ")
			b.WriteString(labelStyle.Render("Ecl Lat:"))
			b.WriteString(valueStyle.Render(fmt.Sprintf("%.1f°", astro.EclipticLatitude(pos))))
		} else {
			b.WriteString(dimStyle.Render("(no data at this time)"))
		}
	} else {
		b.WriteString(headerStyle.Render("☉ Sun"))
		b.WriteString("  ")
		b.WriteString(dimStyle.Render("(heliocentric origin)"))
	}
	b.WriteString("\n")

	playState := "⏸"
	if m.snapshot.Playing {
		playState = "▶"
	}
	b.WriteString(dimStyle.Render("Time:"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("JD %.2f", m.snapshot.CurrentJD)))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("Frame:"))
	total := 0
	if m.snapshot.Scene != nil {
		total = len(m.snapshot.Scene.TimesJD)
	}
	b.WriteString(valueStyle.Render(fmt.Sprintf("%d/%d %s x%d", timeIdx+1, total, playState, m.snapshot.Speed)))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("Mode:"))
	b.WriteString(valueStyle.Render(m.scaleMode.String()))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("Zoom:"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%.2gx", m.scale())))

	return b.String()
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
