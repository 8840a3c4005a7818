package systems

import (
	"testing"

	"github.com/gonewx/dogpet/pkg/components"
	"github.com/gonewx/dogpet/pkg/ecs"
)

// mockPointerInput 用于测试的 mock 指针输入
type mockPointerInput struct {
	x, y     int
	pressed  bool
	released bool
}

func (m *mockPointerInput) PointerPosition() (int, int) { return m.x, m.y }
func (m *mockPointerInput) IsPointerPressed() bool { return m.pressed }
func (m *mockPointerInput) IsPointerJustReleased() bool { return m.released }

func addButton(em *ecs.EntityManager, b *components.ButtonComponent) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, b)
	em.AddComponent(id, &components.UIComponent{})
	return id
}

func TestButtonClickOnRelease(t *testing.T) {
	em := ecs.NewEntityManager()
	input := &mockPointerInput{}
	s := NewButtonSystem(em, input)

	clicks := 0
	id := addButton(em, &components.ButtonComponent{
		X: 100, Y: 100, Width: 80, Height: 30, Label: "Feed", Enabled: true,
		OnClick: func() { clicks++ },
	})
	ui, _ := ecs.GetComponent[*components.UIComponent](em, id)

	tests := []struct {
		name      string
		x, y      int
		pressed   bool
		released  bool
		wantState components.UIState
		wantClick int
	}{
		{"外部", 10, 10, false, false, components.UINormal, 0},
		{"悬停", 120, 110, false, false, components.UIHovered, 0},
		{"按下", 120, 110, true, false, components.UIClicked, 0},
		{"释放", 120, 110, false, true, components.UIHovered, 1},
		{"外部释放", 10, 10, false, true, components.UINormal, 1},
	}
	for _, tt := range tests {
		input.x, input.y, input.pressed, input.released = tt.x, tt.y, tt.pressed, tt.released
		s.Update()
		if ui.State != tt.wantState {
			t.Errorf("%s: state got %v, want %v", tt.name, ui.State, tt.wantState)
		}
		if clicks != tt.wantClick {
			t.Errorf("%s: clicks got %d, want %d", tt.name, clicks, tt.wantClick)
		}
	}
}

func TestButtonDisabled(t *testing.T) {
	em := ecs.NewEntityManager()
	input := &mockPointerInput{x: 5, y: 5, released: true}
	s := NewButtonSystem(em, input)

	clicked := false
	id := addButton(em, &components.ButtonComponent{Width: 10, Height: 10, OnClick: func() { clicked = true }})
	s.Update()

	ui, _ := ecs.GetComponent[*components.UIComponent](em, id)
	if ui.State != components.UIDisabled || clicked {
		t.Errorf("disabled button: state %v, clicked %v", ui.State, clicked)
	}
}

func TestButtonSelectGroup(t *testing.T) {
	em := ecs.NewEntityManager()
	s := NewButtonSystem(em, &mockPointerInput{})

	a := addButton(em, &components.ButtonComponent{Label: "Dog", Group: "breed", Enabled: true})
	b := addButton(em, &components.ButtonComponent{Label: "Corgi", Group: "breed", Enabled: true})
	other := addButton(em, &components.ButtonComponent{Label: "Feed", Selected: true, Enabled: true})

	s.Select(a)
	s.Select(b)

	ba, _ := ecs.GetComponent[*components.ButtonComponent](em, a)
	bb, _ := ecs.GetComponent[*components.ButtonComponent](em, b)
	bo, _ := ecs.GetComponent[*components.ButtonComponent](em, other)
	if ba.Selected || !bb.Selected {
		t.Errorf("only the last selected breed should be selected: a=%v b=%v", ba.Selected, bb.Selected)
	}
	if !bo.Selected {
		t.Error("buttons in other groups must not change")
	}
}

func TestUIHitTest(t *testing.T) {
	em := ecs.NewEntityManager()
	s := NewButtonSystem(em, &mockPointerInput{})
	addButton(em, &components.ButtonComponent{X: 0, Y: 0, Width: 50, Height: 20})
	sl := em.CreateEntity()
	em.AddComponent(sl, &components.SliderComponent{X: 100, Y: 200, Width: 100})

	if !s.HitTest(25, 10) {
		t.Error("button area should be hit")
	}
	if !s.HitTest(150, 205) {
		t.Error("slider track should be hit")
	}
	if s.HitTest(400, 400) {
		t.Error("empty area should not be hit")
	}
}
