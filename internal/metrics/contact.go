package metrics

import (
	"github.com/san-kum/bouncesim/internal/dynamo"
	"github.com/san-kum/bouncesim/internal/physics"
)

// Containment is the fraction of observed ticks in which every body was
// fully inside the world.
type Containment struct {
	name       string
	violations int
	samples    int
}

func NewContainment() *Containment {
	return &Containment{name: "containment"}
}

func (c *Containment) Name() string { return c.name }

func (c *Containment) Observe(bodies []dynamo.Body, w dynamo.World, t float64) {
	c.samples++
	if !physics.Contained(bodies, w) {
		c.violations++
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}

// Penetration is the deepest residual pair overlap left after any tick.
type Penetration struct {
	name string
	max  float64
}

func NewPenetration() *Penetration {
	return &Penetration{name: "max_penetration"}
}

func (p *Penetration) Name() string { return p.name }

func (p *Penetration) Observe(bodies []dynamo.Body, w dynamo.World, t float64) {
	if d := physics.MaxPenetration(bodies); d > p.max {
		p.max = d
	}
}

func (p *Penetration) Value() float64 { return p.max }
func (p *Penetration) Reset()         { p.max = 0 }

// Contacts counts ticks that ended with at least one overlapping pair.
type Contacts struct {
	name  string
	ticks int
}

func NewContacts() *Contacts {
	return &Contacts{name: "contact_ticks"}
}

func (c *Contacts) Name() string { return c.name }

func (c *Contacts) Observe(bodies []dynamo.Body, w dynamo.World, t float64) {
	if physics.MaxPenetration(bodies) > 0 {
		c.ticks++
	}
}

func (c *Contacts) Value() float64 { return float64(c.ticks) }
func (c *Contacts) Reset()         { c.ticks = 0 }

// Defaults returns the metric set recorded for headless runs.
func Defaults(gravity float64) []dynamo.Metric {
	return []dynamo.Metric{
		NewEnergy(gravity),
		NewEnergyDrift(gravity),
		NewContainment(),
		NewPenetration(),
		NewContacts(),
	}
}
