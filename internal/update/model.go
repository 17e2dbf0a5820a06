package update

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"go.uber.org/zap"

	"github.com/sandeepkv93/remindd/internal/alarm"
	"github.com/sandeepkv93/remindd/internal/model"
	"github.com/sandeepkv93/remindd/internal/notify"
	"github.com/sandeepkv93/remindd/internal/store"
)

type Mode string

const (
	ModeList    Mode = "list"
	ModeForm    Mode = "form"
	ModeConfirm Mode = "confirm"

	// ModeConfirmOverwrite asks before the first write over a snapshot that
	// could not be read.
	ModeConfirmOverwrite Mode = "confirm-overwrite"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Add      string
	Edit     string
	Toggle   string
	Favorite string
	Delete   string
	Filter   string
	Activate string
	Palette  string
	Help     string
	Quit     string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

const (
	fieldName = iota
	fieldTime
	fieldFrequency
	fieldCount
)

type FormState struct {
	EditingID int64
	Focus     int
	Err       string
	inputs    [fieldCount]textinput.Model
}

// Deps carries the collaborators the TUI drives. Scheduler and Toast are
// optional; without them the list still works, alarms just never surface.
// A non-nil LoadErr starts the TUI with writes blocked until the user agrees
// to replace the unreadable snapshot.
type Deps struct {
	Store        *store.Store
	Scheduler    *alarm.Scheduler
	Gate         *notify.Gate
	Toast        *notify.Toast
	Logger       *zap.Logger
	Now          func() time.Time
	AutoActivate bool
	LoadErr      error
}

type Model struct {
	Mode          Mode
	Filter        model.FilterMode
	SelectedID    int64
	PendingDelete int64
	Form          FormState
	Palette       CommandPaletteState
	HelpVisible   bool
	Status        StatusBar
	Keys          GlobalKeyMap
	Quitting      bool
	LastError     error
	LastAlarm     *alarm.Event

	ctx       context.Context
	store     *store.Store
	scheduler *alarm.Scheduler
	gate      *notify.Gate
	toast     *notify.Toast
	log       *zap.Logger
	now       func() time.Time
	readOnly  bool

	commandInput textinput.Model
	helpModel    help.Model
}

// AlarmFiredMsg carries one scheduler event into the update loop.
type AlarmFiredMsg struct {
	Event alarm.Event
}

// ToastExpiredMsg asks for a redraw once the toast has timed out.
type ToastExpiredMsg struct{}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

func NewModel(deps Deps) Model {
	m := Model{
		Mode:   ModeList,
		Filter: model.FilterAll,
		Keys: GlobalKeyMap{
			Add:      "a",
			Edit:     "e",
			Toggle:   " ",
			Favorite: "f",
			Delete:   "d",
			Filter:   "tab",
			Activate: "A",
			Palette:  "/",
			Help:     "?",
			Quit:     "q",
		},
		ctx:       context.Background(),
		store:     deps.Store,
		scheduler: deps.Scheduler,
		gate:      deps.Gate,
		toast:     deps.Toast,
		log:       deps.Logger,
		now:       deps.Now,
	}
	if m.log == nil {
		m.log = zap.NewNop()
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.gate == nil {
		var display notify.Display
		if m.toast != nil {
			display = m.toast
		}
		m.gate = notify.NewGate(nil, display)
	}
	m.initBubbleComponents()
	if deps.AutoActivate {
		m.activateAudio()
	}
	if deps.LoadErr != nil {
		m.readOnly = true
		m.LastError = deps.LoadErr
		m.Status = StatusBar{Text: fmt.Sprintf("could not read saved tasks: %v", deps.LoadErr), IsError: true}
	}
	m.clampSelection()
	return m
}

func (m *Model) initBubbleComponents() {
	m.commandInput = textinput.New()
	m.commandInput.Prompt = ""
	m.commandInput.Placeholder = "add 08:00 daily Take medicine"
	m.commandInput.CharLimit = 200

	m.helpModel = help.New()
	m.helpModel.ShowAll = true
	m.Form = newFormState()
}

func newFormState() FormState {
	var f FormState
	placeholders := [fieldCount]string{"Take medicine", "HH:MM", "daily"}
	limits := [fieldCount]int{120, 5, 40}
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = placeholders[i]
		in.CharLimit = limits[i]
		f.inputs[i] = in
	}
	return f
}

// VisibleTasks is the current filter projection of the store.
func (m Model) VisibleTasks() []model.Task {
	if m.store == nil {
		return []model.Task{}
	}
	return model.Project(m.store.List(), m.Filter)
}

func (m Model) selectedTask() (model.Task, bool) {
	for _, t := range m.VisibleTasks() {
		if t.ID == m.SelectedID {
			return t, true
		}
	}
	return model.Task{}, false
}

// ReadOnly reports whether writes are still blocked after a failed load.
func (m Model) ReadOnly() bool {
	return m.readOnly
}
