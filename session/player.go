package session

import "math"

// ConnID identifies one live connection. It is assigned by the transport and
// never supplied by the client.
type ConnID string

type Player struct {
	ID     ConnID  `json:"id"`
	Name   string  `json:"name"`
	Color  string  `json:"color"`
	X      float64 `json:"x"`
	Z      float64 `json:"z"`
	ThetaY float64 `json:"thetaY"`
}

// Pose is a ground position plus yaw.
type Pose struct {
	X      float64
	Z      float64
	ThetaY float64
}

func (p Pose) finite() bool {
	for _, v := range []float64{p.X, p.Z, p.ThetaY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (p *Player) UpdatePose(pose Pose) {
	p.X = pose.X
	p.Z = pose.Z
	p.ThetaY = pose.ThetaY
}
