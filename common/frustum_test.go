package common

import "testing"

func TestFrustumContainsSphere(t *testing.T) {
	proj, err := Perspective(90, 1, 0.1, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f := ExtractFrustum(proj)

	testCases := map[string]struct {
		center   Vector3
		radius   float32
		expected bool
	}{
		"InFront":        {Vec3(0, 0, -5), 1, true},
		"Behind":         {Vec3(0, 0, 5), 1, false},
		"BeyondFar":      {Vec3(0, 0, -200), 1, false},
		"StraddlingNear": {Vec3(0, 0, 0), 0.5, true},
		"FarLeft":        {Vec3(-50, 0, -5), 1, false},
		"EdgeOverlap":    {Vec3(-5.5, 0, -5), 1, true},
	}

	for name, tt := range testCases {
		t.Run(name, func(t *testing.T) {
			if got := f.ContainsSphere(tt.center, tt.radius); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestFrustumPlanesNormalized(t *testing.T) {
	proj, _ := Perspective(60, 1.5, 0.5, 50)
	f := ExtractFrustum(proj.Mul(Translate(0, 0, -3)))
	for i, p := range f.Planes {
		if l := p.Normal.Length(); !near(l, 1, 1e-5) {
			t.Errorf("plane %d normal length expected 1, got %v", i, l)
		}
	}
}
