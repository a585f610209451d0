// Package session orchestrates the live candidate engine: key events in,
// filtered candidate views out. All state is owned by a single goroutine.
package session

import (
	"context"
	"log/slog"
	"strings"

	"github.com/oklog/ulid/v2"

	"wlpick/internal/config"
	"wlpick/internal/keybind"
	"wlpick/internal/modal"
	"wlpick/internal/rank"
)

// pageStep is the row delta for page and half-page movement.
const pageStep = 10

// Source supplies candidates on demand. Fetch failure yields an empty list
// at the call site, never a session error.
type Source interface {
	Fetch() ([]rank.Candidate, error)
	Delete(c rank.Candidate) error
}

// Executor performs the payload action for a selected candidate. It is
// called on the session goroutine so implementations may touch engine state
// (usage counts); the payload subprocess itself must be spawned, not
// awaited.
type Executor interface {
	Execute(c rank.Candidate) error
}

// ConfigReceiver is implemented by sources whose behavior flags come from
// the config snapshot (max items, copy notifications, terminal emulator).
// SetConfig is called on the session goroutine on every reload.
type ConfigReceiver interface {
	SetConfig(cfg *config.Config)
}

// UsageAnnotator is implemented by sources that keep usage counts. After a
// selection that leaves the window open, the session re-annotates so the
// frequency bias applies without waiting for the next refetch.
type UsageAnnotator interface {
	Annotate(candidates []rank.Candidate)
}

// Presenter is the rendering collaborator (a toolkit window, the TUI, or a
// test double).
type Presenter interface {
	Show()
	Hide()
	Render(view View)
}

// Calculator evaluates an arithmetic expression. ok=false means no result
// and the query falls through to normal filtering.
type Calculator interface {
	Eval(expr string) (string, bool)
}

// StyleReloader reloads and reapplies the stylesheet on config/style reload.
type StyleReloader interface {
	Reload(theme string) error
}

// View is the immutable render snapshot handed to the Presenter.
type View struct {
	Query    string
	Mode     modal.Mode
	VimMode  bool
	Items    []rank.Candidate
	Selected int
	Visible  bool
}

// Options wires a Session to its collaborators.
type Options struct {
	Tool   string // "wlpick-clip" or "wlpick-launch"
	Logger *slog.Logger

	// LoadConfig supplies a fresh config snapshot; called on every toggle
	// and style reload.
	LoadConfig func() (*config.Config, error)

	Source    Source
	Executor  Executor
	Presenter Presenter
	Styles    StyleReloader
	Calc      Calculator // nil disables the = prefix
	Policy    rank.Policy

	// AllowDelete enables the delete action and the dd sequence
	// (clipboard tool only).
	AllowDelete bool

	// ThemeOverride, when set, wins over the configured theme. Carried by
	// preview relaunches via the environment.
	ThemeOverride string
}

// Session owns the engine state. All mutation happens on the Run goroutine;
// the exported methods post events and are safe from any goroutine.
type Session struct {
	opts   Options
	logger *slog.Logger

	cfg     *config.Config
	binds   *keybind.Table
	machine *modal.Machine // nil when vim_mode is off

	candidates []rank.Candidate
	filtered   []rank.Candidate
	query      string
	selected   int
	visible    bool
	calcActive bool // filtered currently holds a calculator result

	events chan event
}

type eventKind int

const (
	evKey eventKind = iota
	evToggle
	evReloadStyle
	evRefresh
	evQuit
)

type event struct {
	kind eventKind
	key  keybind.Key
	mods keybind.Modifier
}

// New creates a session and loads the initial config snapshot.
func New(opts Options) (*Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("tool", opts.Tool, "session", ulid.Make().String())

	s := &Session{
		opts:   opts,
		logger: logger,
		events: make(chan event, 16),
	}
	cfg, err := opts.LoadConfig()
	if err != nil {
		return nil, err
	}
	s.applyConfig(cfg)
	return s, nil
}

// Run consumes events until the context is cancelled or Quit is posted.
func (s *Session) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-s.events:
			if ev.kind == evQuit {
				return
			}
			s.handle(ev)
		}
	}
}

// HandleKey posts a key event into the loop.
func (s *Session) HandleKey(key keybind.Key, mods keybind.Modifier) {
	s.events <- event{kind: evKey, key: key, mods: mods}
}

// Toggle posts a visibility toggle (SIGUSR1, or a repeat invocation).
func (s *Session) Toggle() { s.events <- event{kind: evToggle} }

// ReloadStyle posts a config+style reload (SIGUSR2).
func (s *Session) ReloadStyle() { s.events <- event{kind: evReloadStyle} }

// Refresh posts a candidate re-fetch.
func (s *Session) Refresh() { s.events <- event{kind: evRefresh} }

// Quit stops the Run loop.
func (s *Session) Quit() { s.events <- event{kind: evQuit} }

func (s *Session) handle(ev event) {
	switch ev.kind {
	case evKey:
		s.handleKey(ev.key, ev.mods)
	case evToggle:
		s.toggle()
	case evReloadStyle:
		s.reloadStyle()
	case evRefresh:
		s.refresh()
	}
}

// handleKey routes one key event: modal machine first (vim), then the
// keybind table, then the text field.
func (s *Session) handleKey(key keybind.Key, mods keybind.Modifier) {
	if s.machine != nil {
		if op, ok := s.machine.HandleKey(key, mods); ok {
			s.applyOp(op)
			return
		}
		if s.machine.Mode() == modal.Normal {
			// Unhandled Normal-mode keys still hit the plain table so
			// arrows and paging keys work, but never edit the query.
			if action, ok := s.binds.Match(key, mods); ok {
				s.applyAction(action)
			}
			return
		}
	}

	if action, ok := s.binds.Match(key, mods); ok {
		s.applyAction(action)
		return
	}
	s.editQuery(key)
}

func (s *Session) applyOp(op modal.Op) {
	switch op {
	case modal.OpEnterInsert, modal.OpExitInsert:
		s.render()
	case modal.OpClose:
		s.hide()
	case modal.OpDown:
		s.moveSelection(1)
	case modal.OpUp:
		s.moveSelection(-1)
	case modal.OpTop:
		s.setSelection(0)
	case modal.OpBottom:
		s.setSelection(len(s.filtered) - 1)
	case modal.OpHalfPageDown:
		s.moveSelection(pageStep)
	case modal.OpHalfPageUp:
		s.moveSelection(-pageStep)
	case modal.OpSelect:
		s.selectCurrent()
	case modal.OpDelete:
		s.deleteCurrent()
	}
}

func (s *Session) applyAction(action keybind.Action) {
	switch action {
	case keybind.ActionSelect:
		s.selectCurrent()
	case keybind.ActionDelete:
		if s.opts.AllowDelete {
			s.deleteCurrent()
		}
	case keybind.ActionClearSearch:
		s.query = ""
		s.refilter()
	case keybind.ActionClose:
		s.hide()
	case keybind.ActionNext:
		s.moveSelection(1)
	case keybind.ActionPrev:
		s.moveSelection(-1)
	case keybind.ActionPageDown:
		s.moveSelection(pageStep)
	case keybind.ActionPageUp:
		s.moveSelection(-pageStep)
	case keybind.ActionFirst:
		s.setSelection(0)
	case keybind.ActionLast:
		s.setSelection(len(s.filtered) - 1)
	}
}

// editQuery applies an unbound key to the query text.
func (s *Session) editQuery(key keybind.Key) {
	switch {
	case key == keybind.KeyBackSpace:
		if s.query == "" {
			return
		}
		runes := []rune(s.query)
		s.query = string(runes[:len(runes)-1])
	case key == keybind.KeySpace:
		s.query += " "
	default:
		r, ok := key.Rune()
		if !ok {
			return
		}
		s.query += string(r)
	}
	s.refilter()
}

// refilter rebuilds the visible list from the current query and resets the
// selection to the first row.
func (s *Session) refilter() {
	s.calcActive = false
	if s.opts.Calc != nil && s.cfg.Behavior.Calculator && strings.HasPrefix(s.query, "=") {
		if result, ok := s.opts.Calc.Eval(s.query); ok {
			s.filtered = []rank.Candidate{{
				ID:        "calc",
				Primary:   result,
				Secondary: strings.TrimSpace(strings.TrimPrefix(s.query, "=")),
			}}
			s.calcActive = true
			s.selected = 0
			s.render()
			return
		}
		// No result: the literal query, marker included, filters normally.
	}
	s.filtered = s.opts.Policy.Filter(s.candidates, s.query)
	s.selected = 0
	s.render()
}

func (s *Session) moveSelection(delta int) {
	s.setSelection(s.selected + delta)
}

func (s *Session) setSelection(i int) {
	if max := len(s.filtered) - 1; i > max {
		i = max
	}
	if i < 0 {
		i = 0
	}
	s.selected = i
	s.render()
}

// selectCurrent resolves the selected row back to its candidate and hands
// it to the executor on this goroutine. Executors spawn their payload
// subprocess and return without waiting on it.
func (s *Session) selectCurrent() {
	c, ok := s.resolveSelected()
	if !ok {
		return
	}
	s.logger.Debug("selected candidate", "primary", c.Primary)
	if err := s.opts.Executor.Execute(c); err != nil {
		s.logger.Warn("payload execution failed", "primary", c.Primary, "error", err)
	}
	if s.cfg.Behavior.CloseOnSelect {
		s.hide()
		return
	}
	if an, ok := s.opts.Source.(UsageAnnotator); ok {
		an.Annotate(s.candidates)
		s.refilter()
	}
}

func (s *Session) deleteCurrent() {
	c, ok := s.resolveSelected()
	if !ok {
		return
	}
	if err := s.opts.Source.Delete(c); err != nil {
		s.logger.Warn("delete failed", "primary", c.Primary, "error", err)
	}
	keep := s.selected
	s.fetch()
	s.refilter()
	s.setSelection(keep)
}

func (s *Session) resolveSelected() (rank.Candidate, bool) {
	if s.calcActive {
		if len(s.filtered) == 0 {
			return rank.Candidate{}, false
		}
		return s.filtered[s.selected], true
	}
	return s.opts.Policy.ResolveIndex(s.candidates, s.query, s.selected)
}

// toggle hides a visible window; otherwise reloads config, refreshes
// candidates, clears the query, resets modal state and shows.
func (s *Session) toggle() {
	if s.visible {
		s.hide()
		return
	}
	s.reloadConfig()
	s.fetch()
	s.query = ""
	if s.machine != nil {
		s.machine.Reset()
	}
	s.refilter()
	s.show()
}

// reloadStyle reloads config and restyles without touching visibility or
// candidates.
func (s *Session) reloadStyle() {
	s.reloadConfig()
	if s.opts.Styles != nil {
		if err := s.opts.Styles.Reload(s.effectiveTheme()); err != nil {
			s.logger.Warn("style reload failed", "error", err)
		}
	}
	s.render()
}

func (s *Session) refresh() {
	s.fetch()
	s.refilter()
}

func (s *Session) fetch() {
	items, err := s.opts.Source.Fetch()
	if err != nil {
		s.logger.Warn("candidate fetch failed", "error", err)
		items = nil
	}
	s.candidates = items
}

func (s *Session) reloadConfig() {
	cfg, err := s.opts.LoadConfig()
	if err != nil {
		s.logger.Warn("config reload failed, keeping previous snapshot", "error", err)
		return
	}
	s.applyConfig(cfg)
}

// applyConfig installs a config snapshot wholesale: keybind table, modal
// machine and behavior flags.
func (s *Session) applyConfig(cfg *config.Config) {
	binds, err := cfg.KeybindTable()
	if err != nil {
		s.logger.Warn("invalid keybinds, keeping previous table", "error", err)
		if s.binds == nil {
			binds = keybind.DefaultTable()
		} else {
			binds = s.binds
		}
	}
	s.cfg = cfg
	s.binds = binds
	if cfg.Behavior.VimMode {
		s.machine = modal.NewMachine(s.opts.AllowDelete)
	} else {
		s.machine = nil
	}
	if recv, ok := s.opts.Source.(ConfigReceiver); ok {
		recv.SetConfig(cfg)
	}
}

func (s *Session) effectiveTheme() string {
	if s.opts.ThemeOverride != "" {
		return s.opts.ThemeOverride
	}
	return s.cfg.Style.Theme
}

// Theme returns the theme name in effect for this session.
func (s *Session) Theme() string { return s.effectiveTheme() }

func (s *Session) show() {
	s.visible = true
	s.opts.Presenter.Show()
	s.render()
}

func (s *Session) hide() {
	s.visible = false
	s.opts.Presenter.Hide()
}

func (s *Session) render() {
	mode := modal.Insert
	if s.machine != nil {
		mode = s.machine.Mode()
	}
	s.opts.Presenter.Render(View{
		Query:    s.query,
		Mode:     mode,
		VimMode:  s.machine != nil,
		Items:    s.filtered,
		Selected: s.selected,
		Visible:  s.visible,
	})
}
