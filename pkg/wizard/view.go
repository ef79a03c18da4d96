package wizard

import "github.com/goliatone/go-cybertalent/pkg/validation"

// Dot is one progress indicator.
type Dot struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	Active    bool   `json:"active"`
}

// View is the display state derived from the controller.
type View struct {
	Step      int             `json:"step"`
	StepCount int             `json:"stepCount"`
	Title     string          `json:"title"`
	Progress  float64         `json:"progress"`
	Dots      []Dot           `json:"dots"`
	Visible   map[string]bool `json:"visible"`
	Field     string          `json:"field,omitempty"`
	Code      string          `json:"code,omitempty"`
	Message   string          `json:"message,omitempty"`
	Notice    string          `json:"notice,omitempty"`
	First     bool            `json:"first"`
	Last      bool            `json:"last"`
}

// Shows reports whether a conditional field is currently revealed.
func (v View) Shows(field string) bool {
	return v.Visible[field]
}

func buildView(step int, visible map[string]bool, failure validation.Result, notice string) View {
	count := len(steps)
	dots := make([]Dot, count)
	for i, s := range steps {
		dots[i] = Dot{Title: s.Title, Completed: i < step, Active: i == step}
	}
	vis := make(map[string]bool, len(visible))
	for k, v := range visible {
		vis[k] = v
	}
	return View{
		Step:      step,
		StepCount: count,
		Title:     steps[step].Title,
		Progress:  float64(step+1) / float64(count),
		Dots:      dots,
		Visible:   vis,
		Field:     failure.Field,
		Code:      failure.Code,
		Message:   failure.Message,
		Notice:    notice,
		First:     step == 0,
		Last:      step == count-1,
	}
}
