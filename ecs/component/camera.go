package component

type Camera struct {
	X          float64
	Y          float64
	Zoom       float64
	Smoothness float64
	// LookAhead shifts the camera toward the direction the target faces.
	LookAhead float64

	VelocityX float64
	VelocityY float64
	Snapped   bool
}

var CameraComponent = NewComponent[Camera]()
