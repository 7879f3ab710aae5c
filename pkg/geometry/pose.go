package geometry

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Vec3 represents a 3D vector in world units.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// NewVec3 creates a new Vec3.
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns the sum of two vectors.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// Scale returns the vector scaled by a factor.
func (v Vec3) Scale(factor float64) Vec3 {
	return Vec3{X: v.X * factor, Y: v.Y * factor, Z: v.Z * factor}
}

// Length returns the Euclidean length.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Pose is a rigid 4x4 transform (row-major) used for surface hits and
// reference spaces. Only rotation and translation are ever stored; scale
// lives on scene nodes, not in poses.
type Pose struct {
	m [16]float64
}

// IdentityPose returns the identity transform.
func IdentityPose() Pose {
	var p Pose
	p.m[0], p.m[5], p.m[10], p.m[15] = 1, 1, 1, 1
	return p
}

// TranslationPose returns a pure translation transform.
func TranslationPose(v Vec3) Pose {
	p := IdentityPose()
	p.m[3] = v.X
	p.m[7] = v.Y
	p.m[11] = v.Z
	return p
}

// YawPose returns a rotation about the world Y axis.
func YawPose(radians float64) Pose {
	p := IdentityPose()
	c, s := math.Cos(radians), math.Sin(radians)
	p.m[0], p.m[2] = c, s
	p.m[8], p.m[10] = -s, c
	return p
}

// Translation returns the translation component of the pose.
func (p Pose) Translation() Vec3 {
	return Vec3{X: p.m[3], Y: p.m[7], Z: p.m[11]}
}

// Mul returns the composition p * other (other applied first).
func (p Pose) Mul(other Pose) Pose {
	var out Pose
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += p.m[row*4+k] * other.m[k*4+col]
			}
			out.m[row*4+col] = sum
		}
	}
	return out
}

// Apply transforms a point by the pose.
func (p Pose) Apply(v Vec3) Vec3 {
	return Vec3{
		X: p.m[0]*v.X + p.m[1]*v.Y + p.m[2]*v.Z + p.m[3],
		Y: p.m[4]*v.X + p.m[5]*v.Y + p.m[6]*v.Z + p.m[7],
		Z: p.m[8]*v.X + p.m[9]*v.Y + p.m[10]*v.Z + p.m[11],
	}
}

// Inverse returns the inverse transform, if it exists.
func (p Pose) Inverse() (Pose, bool) {
	src := mat.NewDense(4, 4, p.m[:])
	var inv mat.Dense
	if err := inv.Inverse(src); err != nil {
		return Pose{}, false
	}

	var out Pose
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			out.m[row*4+col] = inv.At(row, col)
		}
	}
	return out, true
}

// ToMatrix returns the pose as a flat row-major [16]float64 array.
func (p Pose) ToMatrix() [16]float64 {
	return p.m
}

// PoseFromMatrix creates a Pose from a flat row-major [16]float64 array.
func PoseFromMatrix(m [16]float64) Pose {
	return Pose{m: m}
}
