package actor

import "fmt"

// Axis selects one coordinate of a position, extent or velocity.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return fmt.Sprintf("axis(%d)", uint8(a))
	}
}

// ParseAxis converts "x", "y" or "z" (any case) into an Axis.
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "x", "X":
		return AxisX, nil
	case "y", "Y":
		return AxisY, nil
	case "z", "Z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidAxis, s)
}

// Dimension is the number of active axes of a volume. It is fixed at construction.
type Dimension uint8

const (
	Dim2 Dimension = 2
	Dim3 Dimension = 3
)

var (
	axes2 = []Axis{AxisX, AxisY}
	axes3 = []Axis{AxisX, AxisY, AxisZ}
)

// Axes returns the active axes, X first. The returned slice must not be modified.
func (d Dimension) Axes() []Axis {
	if d == Dim3 {
		return axes3
	}
	return axes2
}

// Supports reports whether the axis is active in this dimension.
func (d Dimension) Supports(axis Axis) bool {
	return int(axis) < int(d)
}

func (d Dimension) Valid() bool {
	return d == Dim2 || d == Dim3
}

func (d Dimension) String() string {
	return fmt.Sprintf("%dD", uint8(d))
}

// Face identifies which face of a static box has been penetrated.
// Left/Right are the min/max X faces, Bottom/Top the min/max Y faces and Back/Front the min/max Z faces.
type Face uint8

const (
	FaceNone Face = iota
	FaceLeft
	FaceRight
	FaceBottom
	FaceTop
	FaceBack
	FaceFront
	// FaceEqual is an exactly square overlap: the two smallest penetrations are equal.
	FaceEqual
)

var faceNames = [...]string{"none", "left", "right", "bottom", "top", "back", "front", "equal"}

func (f Face) String() string {
	if int(f) < len(faceNames) {
		return faceNames[f]
	}
	return fmt.Sprintf("face(%d)", uint8(f))
}

// Axis returns the axis the face is orthogonal to. FaceNone and FaceEqual have no axis.
func (f Face) Axis() (Axis, bool) {
	switch f {
	case FaceLeft, FaceRight:
		return AxisX, true
	case FaceBottom, FaceTop:
		return AxisY, true
	case FaceBack, FaceFront:
		return AxisZ, true
	}
	return 0, false
}

// IsMax reports whether the face lies on the max side of its axis (Right, Top, Front).
func (f Face) IsMax() bool {
	return f == FaceRight || f == FaceTop || f == FaceFront
}

// Opposite returns the face on the other side of the same axis.
// FaceNone and FaceEqual are their own opposite.
func (f Face) Opposite() Face {
	axis, ok := f.Axis()
	if !ok {
		return f
	}
	return FaceOf(axis, !f.IsMax())
}

// FaceOf returns the face on the given side of an axis.
func FaceOf(axis Axis, max bool) Face {
	switch axis {
	case AxisX:
		if max {
			return FaceRight
		}
		return FaceLeft
	case AxisY:
		if max {
			return FaceTop
		}
		return FaceBottom
	case AxisZ:
		if max {
			return FaceFront
		}
		return FaceBack
	}
	return FaceNone
}
