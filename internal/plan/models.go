// Package plan defines the training plan data model shared by the solver,
// the rule engine, and the diff engine. It holds no logic beyond cloning.
package plan

// Tag labels a day or a session. Tags feed rule conditions.
type Tag struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Color    string `json:"color"`
	Category string `json:"category"`
}

// Set is a single working set of an exercise.
type Set struct {
	// Weight in kg, nil when the set is unloaded or bodyweight.
	Weight *float64 `json:"weight,omitempty"`
	// Reps is a number or a textual range such as "8-12".
	Reps string `json:"reps"`
	// RestSeconds is the programmed rest after the set, nil for default.
	RestSeconds *int `json:"restSeconds,omitempty"`
	// Effort is a subjective 1-10 rating, nil when not prescribed.
	Effort *int `json:"effort,omitempty"`
}

// Exercise is a named exercise with its sets. Names are matched
// case-insensitively by the solver and the rule engine.
type Exercise struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Sets []Set  `json:"sets"`
}

// Block groups exercises within a day, e.g. warm-up, main lift, conditioning.
type Block struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	Exercises []Exercise `json:"exercises"`
}

// Day is one calendar day of a training week.
type Day struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Tags   []Tag   `json:"tags,omitempty"`
	Blocks []Block `json:"blocks"`
}

// Constraints limit what the solver may keep in a day. All fields are
// optional; absence means unconstrained.
type Constraints struct {
	TimeBudgetMinutes  *int     `json:"timeBudgetMinutes,omitempty"`
	AvailableEquipment []string `json:"availableEquipment,omitempty"`
	Injuries           []string `json:"injuries,omitempty"`
}

// Session is the flat session view that bulk edits, the rule engine, and the
// diff engine operate on.
type Session struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Time      string   `json:"time"`
	Duration  string   `json:"duration"`
	Modality  string   `json:"modality"`
	Intensity string   `json:"intensity"`
	Notes     string   `json:"notes"`
	Tags      []string `json:"tags,omitempty"`
}

// DayPlan is one day of a weekly plan in the session view.
type DayPlan struct {
	Sessions []Session `json:"sessions"`
	Tags     []string  `json:"tags,omitempty"`
}

// WeekPlan maps day keys (e.g. "monday") to day plans.
type WeekPlan map[string]DayPlan
