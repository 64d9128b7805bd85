package physics_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/bouncesim/internal/dynamo"
	"github.com/san-kum/bouncesim/internal/physics"
)

var _ = Describe("Simulation step", func() {
	var (
		world  dynamo.World
		params dynamo.Params
	)

	BeforeEach(func() {
		world = dynamo.World{Width: 1000, Height: 1000}
		params = dynamo.Params{Gravity: 0, Restitution: 0.8, Dt: 1}
	})

	Describe("wall containment", func() {
		It("keeps a lone body inside the world for any number of ticks", func() {
			cfg := dynamo.DefaultConfig()
			cfg.Bodies = 1
			cfg.Spawn.MaxSpeed = 25
			rng := rand.New(rand.NewSource(11))

			for run := 0; run < 20; run++ {
				bodies := dynamo.Spawn(cfg, rng)
				for tick := 0; tick < 500; tick++ {
					physics.Step(bodies, cfg.World, cfg.Params)
					Expect(cfg.World.Contains(bodies[0])).To(BeTrue(), "run %d tick %d: %+v", run, tick, bodies[0])
				}
			}
		})
	})

	Describe("wall containment with collisions", func() {
		It("brings every body back inside on the next integration phase", func() {
			cfg := dynamo.DefaultConfig()
			cfg.Bodies = 60
			bodies := dynamo.Spawn(cfg, rand.New(rand.NewSource(5)))
			engine := physics.NewEngine(physics.AllPairs{}, false)

			for tick := 0; tick < 2000; tick++ {
				engine.Step(bodies, cfg.World, cfg.Params)

				// the pair pass may leave a body past a wall; only the
				// following phase A is required to contain it
				next := append([]dynamo.Body(nil), bodies...)
				for i := range next {
					physics.Integrate(&next[i], cfg.World, cfg.Params)
					Expect(cfg.World.Contains(next[i])).To(BeTrue(), "tick %d body %d: %+v", tick, i, next[i])
				}
			}
		})
	})

	Describe("reflection", func() {
		It("flips vx and clamps x to the radius on the left wall", func() {
			b := dynamo.Body{Pos: dynamo.Vec2{X: 13, Y: 500}, Vel: dynamo.Vec2{X: -6}, Radius: 10}
			physics.Integrate(&b, world, params)
			Expect(b.Pos.X).To(Equal(10.0))
			Expect(b.Vel.X).To(Equal(6.0))
		})
	})

	Describe("pair overlap", func() {
		It("never increases penetration between two free bodies", func() {
			bodies := []dynamo.Body{
				{Pos: dynamo.Vec2{X: 500, Y: 500}, Vel: dynamo.Vec2{X: 1}, Radius: 10},
				{Pos: dynamo.Vec2{X: 515, Y: 500}, Vel: dynamo.Vec2{X: -1}, Radius: 12},
			}
			gap := func() float64 {
				return bodies[1].Pos.Sub(bodies[0].Pos).Len() - 22
			}
			before := gap()
			Expect(before).To(BeNumerically("<", 0))

			physics.Step(bodies, world, params)

			Expect(math.Abs(gap())).To(BeNumerically("<", math.Abs(before)))
		})

		It("exchanges velocities of equal bodies meeting head on", func() {
			bodies := []dynamo.Body{
				{Pos: dynamo.Vec2{X: 100, Y: 500}, Vel: dynamo.Vec2{X: 2}, Radius: 10},
				{Pos: dynamo.Vec2{X: 119, Y: 500}, Vel: dynamo.Vec2{X: -2}, Radius: 10},
			}

			physics.Step(bodies, world, params)

			Expect(bodies[0].Vel).To(Equal(dynamo.Vec2{X: -2}))
			Expect(bodies[1].Vel).To(Equal(dynamo.Vec2{X: 2}))
			Expect(bodies[1].Pos.Sub(bodies[0].Pos).Len()).To(BeNumerically("~", 20, 1e-9))
		})

		It("does not trigger on exactly touching bodies", func() {
			a := dynamo.Body{Pos: dynamo.Vec2{X: 0}, Vel: dynamo.Vec2{X: 2}, Radius: 10}
			b := dynamo.Body{Pos: dynamo.Vec2{X: 20}, Vel: dynamo.Vec2{X: -2}, Radius: 10}
			Expect(physics.ResolvePair(&a, &b)).To(BeFalse())
			Expect(a.Vel.X).To(Equal(2.0))
			Expect(b.Vel.X).To(Equal(-2.0))
		})

		It("skips coincident centres without producing NaN", func() {
			bodies := []dynamo.Body{
				{Pos: dynamo.Vec2{X: 300, Y: 300}, Vel: dynamo.Vec2{X: 1, Y: 2}, Radius: 10},
				{Pos: dynamo.Vec2{X: 300, Y: 300}, Vel: dynamo.Vec2{X: -3, Y: 4}, Radius: 14},
			}
			snapshot := append([]dynamo.Body(nil), bodies...)

			Expect(physics.ResolveCollisions(bodies, physics.AllPairs{})).To(Equal(0))
			Expect(bodies).To(Equal(snapshot))
			for _, b := range bodies {
				Expect(b.Pos.IsValid()).To(BeTrue())
				Expect(b.Vel.IsValid()).To(BeTrue())
			}
		})
	})

	Describe("clamp", func() {
		It("is a no-op on a contained body", func() {
			b := dynamo.Body{Pos: dynamo.Vec2{X: 10, Y: 990}, Vel: dynamo.Vec2{X: -4, Y: 7}, Radius: 10}
			orig := b
			physics.ClampToWalls(&b, world, params.Restitution)
			Expect(b).To(Equal(orig))
		})
	})

	Describe("uniform grid", func() {
		It("follows bodies moved by earlier corrections in the same pass", func() {
			// a and c start two cells apart; resolving (a, b) pushes a
			// into c, which the full scan then corrects as well
			bodies := []dynamo.Body{
				{Pos: dynamo.Vec2{X: 100.5, Y: 50}, Radius: 10},
				{Pos: dynamo.Vec2{X: 117.5, Y: 50}, Radius: 10},
				{Pos: dynamo.Vec2{X: 79.5, Y: 50}, Radius: 10},
			}
			scan := append([]dynamo.Body(nil), bodies...)

			want := physics.ResolveCollisions(scan, physics.AllPairs{})
			got := physics.ResolveCollisions(bodies, physics.NewUniformGrid(20))

			Expect(want).To(Equal(2))
			Expect(got).To(Equal(want))
			Expect(bodies).To(Equal(scan))
		})


		It("finds every overlapping pair the full scan finds, in the same order", func() {
			cfg := dynamo.DefaultConfig()
			cfg.Bodies = 80
			bodies := dynamo.Spawn(cfg, rand.New(rand.NewSource(3)))

			overlapping := func(bp physics.Broadphase) [][2]int {
				var pairs [][2]int
				bp.Pairs(bodies, func(i, j int) {
					if physics.Overlap(bodies[i], bodies[j]) > 0 {
						pairs = append(pairs, [2]int{i, j})
					}
				})
				return pairs
			}

			all := overlapping(physics.AllPairs{})
			Expect(all).NotTo(BeEmpty())
			Expect(overlapping(physics.NewUniformGrid(0))).To(Equal(all))
			Expect(overlapping(physics.NewUniformGrid(100))).To(Equal(all))
		})
	})
})
