package screens

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angristan/light-tui/internal/models"
	"github.com/angristan/light-tui/internal/tui/messages"
)

// fakeControls records the calls made by the main screen
type fakeControls struct {
	toggles  int
	changes  []int
	nudges   []int
	commits  []int
	cancels  int
	pending  bool
	dragging bool
	value    int
	err      error
}

type doneMsg struct{ op string }

func (f *fakeControls) Toggle(models.LightStatus) tea.Cmd {
	f.toggles++
	return func() tea.Msg { return doneMsg{"toggle"} }
}

func (f *fakeControls) DragChange(v int) {
	f.changes = append(f.changes, v)
	f.value = v
	f.dragging = true
}

func (f *fakeControls) Nudge(delta int) tea.Cmd {
	f.nudges = append(f.nudges, delta)
	return nil
}

func (f *fakeControls) DragCommit(v int) tea.Cmd {
	f.commits = append(f.commits, v)
	return func() tea.Msg { return doneMsg{"commit"} }
}

func (f *fakeControls) CancelDrag(models.LightStatus) { f.cancels++ }
func (f *fakeControls) Pending() bool                 { return f.pending }
func (f *fakeControls) Dragging() bool                { return f.dragging }
func (f *fakeControls) SliderValue() int              { return f.value }
func (f *fakeControls) Err() error                    { return f.err }

var (
	lightOn  = models.LightStatus{TurnedOn: true, Brightness: models.NewPercent(50), LightLevel: models.NewPercent(20)}
	lightOff = models.LightStatus{TurnedOn: false, Brightness: models.NewPercent(0), LightLevel: models.NewPercent(20)}
)

func newTestMain() MainModel {
	m := NewMainModel("http://192.168.1.50")
	m.SetSize(71, 24)
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMainModel_PresetKeys(t *testing.T) {
	m := newTestMain()
	c := &fakeControls{}

	_, cmd := m.Update(runes("7"), lightOn, c)
	require.NotNil(t, cmd)
	assert.Equal(t, []int{70}, c.changes)
	assert.Equal(t, []int{70}, c.commits)

	_, _ = m.Update(runes("0"), lightOn, c)
	assert.Equal(t, []int{70, 100}, c.commits)
}

func TestMainModel_BrightnessIgnoredWhenOff(t *testing.T) {
	m := newTestMain()
	c := &fakeControls{}

	for _, msg := range []tea.Msg{
		runes("5"),
		tea.KeyMsg{Type: tea.KeyLeft},
		tea.KeyMsg{Type: tea.KeyRight},
		tea.MouseMsg{X: 10, Y: rowSlider, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft},
	} {
		_, _ = m.Update(msg, lightOff, c)
	}

	assert.Empty(t, c.changes)
	assert.Empty(t, c.nudges)
	assert.Empty(t, c.commits)
}

func TestMainModel_ArrowKeysNudge(t *testing.T) {
	m := newTestMain()
	c := &fakeControls{}

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight}, lightOn, c)
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft}, lightOn, c)
	_, _ = m.Update(runes("l"), lightOn, c)

	assert.Equal(t, []int{brightnessStep, -brightnessStep, brightnessStep}, c.nudges)
}

func TestMainModel_EnterCommitsKeyboardDrag(t *testing.T) {
	m := newTestMain()
	c := &fakeControls{dragging: true, value: 35}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter}, lightOn, c)
	require.NotNil(t, cmd)
	assert.Equal(t, []int{35}, c.commits)

	// Nothing to commit when not dragging
	c.dragging = false
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter}, lightOn, c)
	assert.Equal(t, []int{35}, c.commits)
}

func TestMainModel_EscCancelsDrag(t *testing.T) {
	m := newTestMain()
	c := &fakeControls{}

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc}, lightOn, c)
	assert.Equal(t, 1, c.cancels)
}

func TestMainModel_MouseDrag(t *testing.T) {
	m := newTestMain()
	c := &fakeControls{}

	press := tea.MouseMsg{X: contentIndent + 10, Y: rowSlider, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	m, cmd := m.Update(press, lightOn, c)
	assert.Nil(t, cmd)
	assert.Equal(t, []int{20}, c.changes)

	// Motion may leave the slider row and still drags
	motion := tea.MouseMsg{X: contentIndent + 40, Y: rowSlider + 3, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
	m, _ = m.Update(motion, lightOn, c)
	assert.Equal(t, []int{20, 80}, c.changes)
	assert.Empty(t, c.commits)

	release := tea.MouseMsg{X: contentIndent + 40, Y: rowSlider, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone}
	m, cmd = m.Update(release, lightOn, c)
	require.NotNil(t, cmd)
	assert.Equal(t, []int{80}, c.commits)

	// A second release without a press commits nothing
	_, _ = m.Update(release, lightOn, c)
	assert.Equal(t, []int{80}, c.commits)
}

func TestMainModel_MotionWithoutPressIgnored(t *testing.T) {
	m := newTestMain()
	c := &fakeControls{}

	motion := tea.MouseMsg{X: contentIndent + 10, Y: rowSlider, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone}
	_, _ = m.Update(motion, lightOn, c)
	assert.Empty(t, c.changes)
}

func TestMainModel_ClickButtonToggles(t *testing.T) {
	m := newTestMain()
	c := &fakeControls{}

	click := tea.MouseMsg{X: contentIndent + 1, Y: rowButton, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	_, cmd := m.Update(click, lightOn, c)
	require.NotNil(t, cmd)
	assert.Equal(t, 1, c.toggles)

	// Clicking beside the button does nothing
	miss := tea.MouseMsg{X: 60, Y: rowButton, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	_, _ = m.Update(miss, lightOn, c)
	assert.Equal(t, 1, c.toggles)
}

func TestMainModel_SettingsKey(t *testing.T) {
	m := newTestMain()

	_, cmd := m.Update(runes("s"), lightOn, &fakeControls{})
	require.NotNil(t, cmd)
	_, ok := cmd().(messages.ShowSettingsMsg)
	assert.True(t, ok)
}

func TestMainModel_HelpToggle(t *testing.T) {
	m := newTestMain()
	c := &fakeControls{}

	short := m.View(lightOn, c)
	m, _ = m.Update(runes("?"), lightOn, c)
	full := m.View(lightOn, c)

	assert.NotContains(t, short, "cancel drag")
	assert.Contains(t, full, "cancel drag")
}

func TestMainModel_ViewStates(t *testing.T) {
	m := newTestMain()

	view := m.View(lightOff, &fakeControls{})
	assert.Contains(t, view, "Turn On")
	assert.Contains(t, view, "(light is off)")

	view = m.View(lightOn, &fakeControls{pending: true, value: 50})
	assert.Contains(t, view, "Turn Off")
	assert.Contains(t, view, "Sending")
	assert.Contains(t, view, " 50 %")

	view = m.View(lightOn, &fakeControls{err: assert.AnError})
	assert.Contains(t, view, "An error occurred.")
}

func TestBrightnessFromKey(t *testing.T) {
	tests := map[string]int{
		"1": 10, "5": 50, "9": 90, "0": 100, "x": -1, "": -1,
	}
	for key, want := range tests {
		assert.Equal(t, want, brightnessFromKey(key), "key %q", key)
	}
}

func TestSettingsModel(t *testing.T) {
	s := NewSettingsModel(SettingsInfo{Endpoint: "http://192.168.1.50", ConfigPath: "/tmp/config.json"})
	s.SetSize(80, 24)

	view := s.View()
	assert.Contains(t, view, "http://192.168.1.50")
	assert.Contains(t, view, "/tmp/config.json")
	assert.Contains(t, view, "Light Controls")

	for _, msg := range []tea.KeyMsg{{Type: tea.KeyEsc}, runes("s"), {Type: tea.KeyBackspace}} {
		_, cmd := s.Update(msg)
		require.NotNil(t, cmd)
		_, ok := cmd().(messages.HideSettingsMsg)
		assert.True(t, ok)
	}

	_, cmd := s.Update(runes("x"))
	assert.Nil(t, cmd)
}
