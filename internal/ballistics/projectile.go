package ballistics

import "math"

const discTolerance = 1e-12

// Projectile is the initial state of a point mass.
// Units: height in m, speed in m/s, angle in degrees from horizontal, mass in kg.
type Projectile struct {
	InitialY float64
	Speed    float64
	AngleDeg float64
	Mass     float64
}

func New(initialY, speed, angleDeg, mass float64) Projectile {
	return Projectile{
		InitialY: initialY,
		Speed:    speed,
		AngleDeg: angleDeg,
		Mass:     mass,
	}
}

// DecomposeVelocity splits a speed at angleDeg into horizontal and vertical components.
func DecomposeVelocity(speed, angleDeg float64) (vx, vy float64) {
	sin, cos := math.Sincos(angleDeg * math.Pi / 180)
	return speed * cos, speed * sin
}

// Velocity returns the launch velocity components.
func (p Projectile) Velocity() (vx, vy float64) {
	return DecomposeVelocity(p.Speed, p.AngleDeg)
}

// VelocityAt returns the velocity components at time t. Horizontal motion is unaccelerated.
func (p Projectile) VelocityAt(t, a float64) (vx, vy float64) {
	vx, vy = p.Velocity()
	return vx, vy + a*t
}

// SpeedAt returns the speed magnitude at time t.
func (p Projectile) SpeedAt(t, a float64) float64 {
	vx, vy := p.VelocityAt(t, a)
	return math.Hypot(vx, vy)
}

// PositionX returns the horizontal distance travelled at time t.
func (p Projectile) PositionX(t float64) float64 {
	vx, _ := p.Velocity()
	return vx * t
}

// PositionY returns the height at time t. Negative t is computed literally.
func (p Projectile) PositionY(t, a float64) float64 {
	_, vy := p.Velocity()
	return p.InitialY + vy*t + 0.5*a*t*t
}

// KineticEnergy returns 0.5·m·|v(t)|.
//
// The speed is deliberately not squared; callers comparing against the
// textbook 0.5·m·|v|² should use SpeedAt directly.
func (p Projectile) KineticEnergy(t, a float64) float64 {
	return 0.5 * p.Mass * p.SpeedAt(t, a)
}

// PotentialEnergy returns m·a·y(t). With a negative a this is negative above y=0.
func (p Projectile) PotentialEnergy(t, a float64) float64 {
	return p.Mass * a * p.PositionY(t, a)
}

// Momentum returns the launch momentum components.
func (p Projectile) Momentum() (px, py float64) {
	vx, vy := p.Velocity()
	return p.Mass * vx, p.Mass * vy
}

// GravityForce returns the constant force m·a.
func (p Projectile) GravityForce(a float64) float64 {
	return p.Mass * a
}

// TouchdownTime returns the larger real root of ½a·t² + vy·t + (y0 − target) = 0.
func (p Projectile) TouchdownTime(target, a float64) (float64, error) {
	if a == 0 {
		return 0, &ParamError{Op: "touchdown", Acceleration: a, Target: target, Err: ErrInvalidAcceleration}
	}
	_, vy := p.Velocity()
	c := 2 * a * (p.InitialY - target)
	disc := vy*vy - c
	// A target at the apex can round to a slightly negative discriminant.
	if disc < 0 && disc > -discTolerance*(vy*vy+math.Abs(c)) {
		disc = 0
	}
	if disc < 0 {
		return 0, &ParamError{Op: "touchdown", Acceleration: a, Target: target, Err: ErrNoTouchdown}
	}
	sq := math.Sqrt(disc)
	r1 := (-vy + sq) / a
	r2 := (-vy - sq) / a
	return math.Max(r1, r2), nil
}

// MaxHeight returns the rise −vy²/(2a) above the launch height.
func (p Projectile) MaxHeight(a float64) (float64, error) {
	if a == 0 {
		return 0, &ParamError{Op: "max height", Acceleration: a, Err: ErrInvalidAcceleration}
	}
	_, vy := p.Velocity()
	return -vy * vy / (2 * a), nil
}

// ApexTime returns the time at which vertical velocity is zero.
func (p Projectile) ApexTime(a float64) (float64, error) {
	if a == 0 {
		return 0, &ParamError{Op: "apex", Acceleration: a, Err: ErrInvalidAcceleration}
	}
	_, vy := p.Velocity()
	return -vy / a, nil
}

// Apex returns the absolute apex point.
func (p Projectile) Apex(a float64) (Sample, error) {
	t, err := p.ApexTime(a)
	if err != nil {
		return Sample{}, err
	}
	return Sample{T: t, X: p.PositionX(t), Y: p.PositionY(t, a)}, nil
}
