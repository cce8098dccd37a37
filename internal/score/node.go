package score

import (
	"github.com/roach88/mantra/internal/content"
	"github.com/roach88/mantra/internal/pattern"
)

// Node is one operator in a pattern tree.
//
// This is a sealed interface: only types in this package implement it, so
// Build can switch over every case.
type Node interface {
	scoreNode()
}

// Pure repeats one text value per cycle.
type Pure struct {
	Value string
}

// Seq divides each cycle evenly among its values.
type Seq struct {
	Values []string
}

// Silence never produces events.
type Silence struct{}

// Theme plays records from a content theme.
type Theme struct {
	Name          string
	Order         pattern.Order
	Seed          *int64 // nil derives a seed from the session seed
	MinDifficulty content.Difficulty
	MaxDifficulty content.Difficulty
	Tags          content.Tags
}

// Fast speeds Of up by Factor.
type Fast struct {
	Factor float64
	Of     Node
}

// Slow slows Of down by Factor.
type Slow struct {
	Factor float64
	Of     Node
}

// Early shifts Of earlier by Amount cycles.
type Early struct {
	Amount float64
	Of     Node
}

// Late shifts Of later by Amount cycles.
type Late struct {
	Amount float64
	Of     Node
}

// Stack plays all children at once.
type Stack struct {
	Of []Node
}

// Cat gives each child one cycle in turn.
type Cat struct {
	Of []Node
}

// Weave interleaves children round-robin over periods of Count cycles.
type Weave struct {
	Count int
	Of    []Node
}

// Alternate gives each child Cycles whole cycles in turn.
type Alternate struct {
	Cycles int
	Of     []Node
}

// Degrade drops events of Of with probability Prob.
type Degrade struct {
	Prob float64
	Seed *int64
	Of   Node
}

// Every applies Apply to Of on every Nth cycle.
type Every struct {
	N     int
	Apply Transform
	Of    Node
}

// Filter drops record items whose variant tags conflict with Tags.
type Filter struct {
	Tags content.Tags
	Of   Node
}

// Transform operators usable inside every.apply.
const (
	OpFast    = "fast"
	OpSlow    = "slow"
	OpEarly   = "early"
	OpLate    = "late"
	OpDegrade = "degrade"
)

// Transform is a single-argument pattern transformation.
type Transform struct {
	Op    string
	Value float64
}

func (Pure) scoreNode()      {}
func (Seq) scoreNode()       {}
func (Silence) scoreNode()   {}
func (Theme) scoreNode()     {}
func (Fast) scoreNode()      {}
func (Slow) scoreNode()      {}
func (Early) scoreNode()     {}
func (Late) scoreNode()      {}
func (Stack) scoreNode()     {}
func (Cat) scoreNode()       {}
func (Weave) scoreNode()     {}
func (Alternate) scoreNode() {}
func (Degrade) scoreNode()   {}
func (Every) scoreNode()     {}
func (Filter) scoreNode()    {}
