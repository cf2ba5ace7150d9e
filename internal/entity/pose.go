package entity

import "fmt"

const (
	MaxYaw   = 45
	MaxPitch = 30
)

// Pose is a requested head orientation in whole degrees.
// Positive yaw turns the head toward the subject's right, positive pitch tilts it upward.
type Pose struct {
	Yaw   int `json:"yaw"`
	Pitch int `json:"pitch"`
}

func NewPose(yaw, pitch int) (Pose, error) {
	if yaw < -MaxYaw || yaw > MaxYaw {
		return Pose{}, fmt.Errorf("yaw %d is outside [-%d, %d]", yaw, MaxYaw, MaxYaw)
	}
	if pitch < -MaxPitch || pitch > MaxPitch {
		return Pose{}, fmt.Errorf("pitch %d is outside [-%d, %d]", pitch, MaxPitch, MaxPitch)
	}

	return Pose{Yaw: yaw, Pitch: pitch}, nil
}

func (p Pose) IsZero() bool {
	return p.Yaw == 0 && p.Pitch == 0
}
