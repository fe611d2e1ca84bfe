package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/akmonengine/cuboid"
	"github.com/akmonengine/cuboid/actor"
	"github.com/akmonengine/cuboid/force"
)

const scene = `
dimension: 2
gravity:
  axis: y
  magnitude: -0.5
broad_phase: grid
cell_size: 16
log_level: warn
`

// crate prints its landings and ignores blooms once it has been pushed twice
type crate struct {
	actor.NopBehavior
	pushes int
}

func (c *crate) OnCollisionWithStaticBox(self, other *actor.Box, face actor.Face) {
	fmt.Printf("  %s hit %s on its %v face (vy=%.2f)\n", self.Name, other.Name, face, self.Velocity(actor.AxisY))
}

func (c *crate) OnBloomPush(self *actor.Box, push actor.Push) bool {
	if c.pushes >= 2 {
		return false
	}
	c.pushes++
	return true
}

// player reports what its feet are standing on
type player struct {
	actor.NopBehavior
}

func (p *player) OnSensorEntry(sensor *actor.Sensor, other *actor.Box) {
	fmt.Printf("  %s lands on %s\n", sensor.Parent().Name, other.Name)
}

func (p *player) OnSensorExit(sensor *actor.Sensor, other *actor.Box) {
	fmt.Printf("  %s leaves %s\n", sensor.Parent().Name, other.Name)
}

func setupScene() (*cuboid.Environment, []*actor.Box, error) {
	cfg, err := cuboid.LoadConfig(strings.NewReader(scene))
	if err != nil {
		return nil, nil, err
	}
	env, err := cuboid.NewEnvironmentFromConfig(cfg)
	if err != nil {
		return nil, nil, err
	}

	ground := actor.NewBox2(-40, -10, 80, 10, actor.BodyTypeStatic)
	ground.Name = "ground"
	ground.SetFriction(0.2)
	ledge := actor.NewBox2(10, 6, 12, 1, actor.BodyTypeStatic)
	ledge.Name = "ledge"

	var dynamics []*actor.Box
	for i := range 3 {
		box := actor.NewBox2(float64(i*6)-6, 20+float64(i*4), 2, 2, actor.BodyTypeDynamic)
		box.Name = fmt.Sprintf("crate-%d", i)
		box.SetRestitution(0.4)
		box.Behavior = &crate{}
		dynamics = append(dynamics, box)
	}

	hero := actor.NewBox2(12, 12, 1, 2, actor.BodyTypeDynamic)
	hero.Name = "hero"
	hero.Behavior = &player{}
	if err := hero.AttachSensor(actor.NewSensor2(0, -0.25, 1, 0.25)); err != nil {
		return nil, nil, err
	}
	dynamics = append(dynamics, hero)

	for _, box := range append([]*actor.Box{ground, ledge}, dynamics...) {
		if err := env.AddBox(box); err != nil {
			return nil, nil, err
		}
	}

	if err := env.AddZone(force.NewSquareZone2(-40, 0, 10, 40, actor.AxisX, 0.05)); err != nil {
		return nil, nil, err
	}

	return env, dynamics, nil
}

func main() {
	env, boxes, err := setupScene()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	env.Events.Subscribe(cuboid.BOX_DELETED, func(e cuboid.Event) {
		fmt.Printf("  %s removed\n", e.(cuboid.DeletionEvent).Box.Name)
	})

	hero := boxes[len(boxes)-1]
	const maxSteps = 120

	for step := 1; step <= maxSteps; step++ {
		fmt.Printf("--- step %d ---\n", step)

		switch step {
		case 40:
			env.AddBloom(force.NewBloom2(0, 0, 15, 3))
		case 60:
			hero.SetVelocity(actor.AxisX, 0.5)
		case 100:
			boxes[0].MarkForDeletion()
		}

		env.Update()
	}

	fmt.Println("final positions:")
	for _, box := range env.Boxes() {
		fmt.Printf("  %v\n", box)
	}
}
