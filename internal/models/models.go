package models

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Shape is a named template outline. Points are in whatever coordinate space
// the template file uses; only their relative layout matters.
type Shape struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// Attempt is one finished stroke. Seconds is how long the player took, used
// when replaying a recorded round.
type Attempt struct {
	Points  []Point `json:"points"`
	Outside bool    `json:"outside,omitempty"`
	Seconds float64 `json:"seconds,omitempty"`
}

type Verdict struct {
	Shape    string  `json:"shape"`
	Score    float64 `json:"score"`
	Accepted bool    `json:"accepted"`
	Outside  bool    `json:"outside,omitempty"`
	Err      error   `json:"-"`
}
