package terminal

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/valerio/go-jeebie-shell/jeebie/backend"
	"github.com/valerio/go-jeebie-shell/jeebie/backend/terminal/render"
	"github.com/valerio/go-jeebie-shell/jeebie/input"
	"github.com/valerio/go-jeebie-shell/jeebie/input/action"
	"github.com/valerio/go-jeebie-shell/jeebie/input/event"
	"github.com/valerio/go-jeebie-shell/jeebie/video"
)

const (
	width  = video.FramebufferWidth
	height = video.FramebufferHeight

	gameAreaHeight = height/2 + 1
	minTermWidth   = width + 24
	minTermHeight  = gameAreaHeight + 2
	logCapacity    = 200
)

// Backend implements the Backend and Chrome interfaces using tcell
type Backend struct {
	screen     tcell.Screen
	logBuffer  *render.LogBuffer
	logLevel   slog.LevelVar
	config     backend.BackendConfig
	eventQueue []backend.InputEvent
	signals    chan os.Signal

	title      string
	status     string
	menus      []backend.Menu
	fullScreen bool
}

// New creates a new terminal backend
func New() *Backend {
	return &Backend{}
}

// NewWithScreen creates a backend drawing on an existing screen, such as a
// tcell.SimulationScreen.
func NewWithScreen(screen tcell.Screen) *Backend {
	return &Backend{screen: screen}
}

// Init initializes the terminal backend
func (t *Backend) Init(config backend.BackendConfig) error {
	t.config = config
	t.title = config.Title
	t.fullScreen = config.Fullscreen

	if t.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("failed to initialize terminal: %w", err)
		}
		t.screen = screen
	}
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}

	// Logs go to the side panel while the terminal is owned by tcell
	t.logBuffer = render.NewLogBuffer(logCapacity)
	t.logLevel.Set(slog.LevelInfo)
	slog.SetDefault(slog.New(render.NewHandler(t.logBuffer, slog.LevelDebug)))
	slog.Info("Terminal backend initialized")

	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()

	// Set up signal handling for graceful shutdown
	t.signals = make(chan os.Signal, 1)
	signal.Notify(t.signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	return nil
}

// Update renders a frame and processes events
func (t *Backend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	select {
	case sig := <-t.signals:
		slog.Info("Received signal", "signal", sig)
		t.queue(action.FileQuit)
	default:
	}

	// Poll for input events synchronously
	for t.screen.HasPendingEvent() {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			t.processKeyEvent(ev)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}

	events := t.eventQueue
	t.eventQueue = nil

	t.render(frame)
	t.screen.Show()
	return events, nil
}

// Cleanup cleans up terminal resources
func (t *Backend) Cleanup() error {
	if t.signals != nil {
		signal.Stop(t.signals)
	}
	if t.screen != nil {
		t.screen.Fini()
	}
	return nil
}

func (t *Backend) SetTitle(title string) { t.title = title }
func (t *Backend) SetStatus(msg string)  { t.status = msg }

func (t *Backend) SetMenus(menus []backend.Menu) { t.menus = menus }

// SetFullScreen hides the side panel, leaving only the picture.
func (t *Backend) SetFullScreen(on bool) { t.fullScreen = on }

func (t *Backend) queue(act action.Action) {
	slog.Debug("UI event", "action", act)
	t.eventQueue = append(t.eventQueue, backend.InputEvent{Action: act, Type: event.Press})
}

func (t *Backend) processKeyEvent(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyCtrlC {
		t.queue(action.FileQuit)
		return
	}

	if ev.Key() == tcell.KeyRune {
		switch ev.Rune() {
		case '[':
			t.changeLogLevel(-1)
			return
		case ']':
			t.changeLogLevel(1)
			return
		}
	}

	if act, ok := mapKey(ev); ok {
		t.queue(act)
	}
}

// tcellKeyNameMap converts tcell keys to key names used in default mappings
var tcellKeyNameMap = map[tcell.Key]string{
	tcell.KeyEnter:      "Enter",
	tcell.KeyEscape:     "Escape",
	tcell.KeyBackspace:  "Backspace",
	tcell.KeyBackspace2: "Backspace",
	tcell.KeyF1:         "F1",
	tcell.KeyF5:         "F5",
	tcell.KeyF6:         "F6",
	tcell.KeyF7:         "F7",
	tcell.KeyF8:         "F8",
	tcell.KeyF11:        "F11",
}

// keyName returns the default mapping name of a key event.
func keyName(ev *tcell.EventKey) (string, bool) {
	if ev.Key() != tcell.KeyRune {
		name, ok := tcellKeyNameMap[ev.Key()]
		return name, ok
	}

	r := ev.Rune()
	if r == ' ' {
		return "Space", true
	}
	name := string(r)
	if ev.Modifiers()&tcell.ModAlt != 0 {
		name = "Alt+" + name
	}
	return name, true
}

func mapKey(ev *tcell.EventKey) (action.Action, bool) {
	name, ok := keyName(ev)
	if !ok {
		return 0, false
	}
	return input.GetDefaultMapping(name)
}

func (t *Backend) changeLogLevel(direction int) {
	levels := []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError}
	current := 1
	for i, l := range levels {
		if l == t.logLevel.Level() {
			current = i
		}
	}
	next := current - direction
	if next < 0 || next >= len(levels) {
		return
	}
	slog.Info("Log filter changed", "from", levels[current], "to", levels[next])
	t.logLevel.Set(levels[next])
}

func (t *Backend) render(frame *video.FrameBuffer) {
	termWidth, termHeight := t.screen.Size()
	t.screen.Clear()

	if termWidth < width || termHeight < minTermHeight ||
		(!t.fullScreen && termWidth < minTermWidth) {
		msg := fmt.Sprintf("Terminal too small! Need at least %dx%d", minTermWidth, minTermHeight)
		t.drawText(0, termHeight/2, termWidth, msg, tcell.StyleDefault.Foreground(tcell.ColorRed))
		return
	}

	t.drawFrame(frame)

	titleStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	t.drawText(1, 0, width-1, " "+t.title+" ", titleStyle)

	if !t.fullScreen {
		t.drawPanel(width+1, termWidth, termHeight)
	}

	statusStyle := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
	line := fmt.Sprintf(" %s | m=menu o=open space=pause n=step [/]=log filter", t.status)
	for x := 0; x < termWidth; x++ {
		t.screen.SetContent(x, termHeight-1, ' ', nil, statusStyle)
	}
	t.drawText(0, termHeight-1, termWidth, line, statusStyle)
}

func (t *Backend) drawFrame(frame *video.FrameBuffer) {
	for y := 0; y < height; y += 2 {
		for x := 0; x < width; x++ {
			top := frame.GetPixel(uint(x), uint(y))
			bottom := top
			if y+1 < height {
				bottom = frame.GetPixel(uint(x), uint(y+1))
			}

			ch, fg, bg := render.HalfBlock(top, bottom)
			style := tcell.StyleDefault.Foreground(rgb(fg)).Background(rgb(bg))
			t.screen.SetContent(x, y/2+1, ch, nil, style)
		}
	}
}

func rgb(pixel uint32) tcell.Color {
	r, g, b := video.RGB(pixel)
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// drawPanel draws the menus, when shown, and the log below them.
func (t *Backend) drawPanel(startX, termWidth, termHeight int) {
	borderStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	titleStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	for y := 0; y < termHeight-1; y++ {
		t.screen.SetContent(startX, y, '│', nil, borderStyle)
	}

	x := startX + 2
	w := termWidth - x
	y := 0

	if len(t.menus) > 0 {
		y = t.drawMenus(x, y, w, termHeight-1)
		for i := startX + 1; i < termWidth; i++ {
			t.screen.SetContent(i, y, '─', nil, borderStyle)
		}
		t.screen.SetContent(startX, y, '├', nil, borderStyle)
		y++
	}

	t.drawText(x, y, w, fmt.Sprintf(" Logs [%s] ", render.LevelTag(t.logLevel.Level())), titleStyle)
	t.drawLogs(x, y+1, w, termHeight-2)
}

// drawMenus lays out the menus in columns and returns the first free row.
func (t *Backend) drawMenus(x, y, w, maxY int) int {
	titleStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	itemStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	disabledStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	keyStyle := tcell.StyleDefault.Foreground(tcell.ColorTeal)

	const colWidth = 30
	cols := max(w/colWidth, 1)
	row, bottom := y, y

	for i, m := range t.menus {
		col := i % cols
		if col == 0 && i > 0 {
			row = bottom + 1
		}
		cx := x + col*colWidth
		cy := row

		t.drawText(cx, cy, colWidth-1, m.Title, titleStyle)
		cy++
		for _, item := range m.Items {
			if cy >= maxY {
				break
			}
			style := itemStyle
			if !item.Enabled {
				style = disabledStyle
			}
			label := render.CheckMark(item.Checked) + " " + item.Label
			t.drawText(cx, cy, colWidth-6, label, style)
			if item.Key != "" {
				t.drawText(cx+colWidth-6, cy, 5, item.Key, keyStyle)
			}
			cy++
		}
		bottom = max(bottom, cy)
	}
	return min(bottom, maxY)
}

func (t *Backend) drawLogs(x, y, w, maxY int) {
	if w <= 0 || y >= maxY {
		return
	}

	styles := map[string]tcell.Style{
		"DBG": tcell.StyleDefault.Foreground(tcell.ColorGray),
		"INF": tcell.StyleDefault.Foreground(tcell.ColorBlue),
		"WRN": tcell.StyleDefault.Foreground(tcell.ColorYellow),
		"ERR": tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
	}
	for i, entry := range t.logBuffer.Recent(maxY-y, t.logLevel.Level()) {
		t.drawText(x, y+i, w, render.FormatLogEntry(entry), styles[render.LevelTag(entry.Level)])
	}
}

func (t *Backend) drawText(x, y, w int, text string, style tcell.Style) {
	for i, ch := range []rune(render.Truncate(text, w)) {
		t.screen.SetContent(x+i, y, ch, nil, style)
	}
}

var (
	_ backend.Backend = (*Backend)(nil)
	_ backend.Chrome  = (*Backend)(nil)
)
