package model

import "math"

// Vector3 is a position or rotation on a map.
// Value type, передаётся по значению.
type Vector3 struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z"`
}

// NewVector3 создаёт Vector3 с указанными координатами.
func NewVector3(x, y, z float32) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// IsZero reports whether v is the default (unset) placement.
func (v Vector3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Add returns v+o.
func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// DistanceSquared возвращает квадрат расстояния до другой точки (без sqrt для производительности).
func (v Vector3) DistanceSquared(o Vector3) float64 {
	dx := float64(v.X - o.X)
	dy := float64(v.Y - o.Y)
	dz := float64(v.Z - o.Z)
	return dx*dx + dy*dy + dz*dz
}

// Distance returns the euclidean distance to o.
func (v Vector3) Distance(o Vector3) float64 {
	return math.Sqrt(v.DistanceSquared(o))
}
