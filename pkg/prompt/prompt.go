// Package prompt turns a requested head pose into the instruction sent to the
// image-editing model.
//
// Direction conventions: positive yaw turns the head toward the subject's
// right, negative toward the subject's left; positive pitch tilts it upward,
// negative downward. Every non-zero angle is described, so only the zero pose
// produces the "no change" instruction.
package prompt

import (
	"HeadTurner/internal/entity"
	"fmt"
	"strings"
)

const NoChange = "facing forward with no change to the head pose"

func horizontal(yaw int) string {
	switch {
	case yaw > 0:
		return fmt.Sprintf("turned %s to the subject's right", degrees(yaw))
	case yaw < 0:
		return fmt.Sprintf("turned %s to the subject's left", degrees(-yaw))
	}
	return ""
}

func vertical(pitch int) string {
	switch {
	case pitch > 0:
		return fmt.Sprintf("tilted %s upward", degrees(pitch))
	case pitch < 0:
		return fmt.Sprintf("tilted %s downward", degrees(-pitch))
	}
	return ""
}

func degrees(n int) string {
	if n == 1 {
		return "1 degree"
	}
	return fmt.Sprintf("%d degrees", n)
}

// Direction is the short phrase shown under the indicator.
func Direction(pose entity.Pose) string {
	if pose.IsZero() {
		return NoChange
	}

	parts := make([]string, 0, 2)
	if h := horizontal(pose.Yaw); h != "" {
		parts = append(parts, h)
	}
	if v := vertical(pose.Pitch); v != "" {
		parts = append(parts, v)
	}

	return strings.Join(parts, " and ")
}

// Build returns the full instruction for the model.
func Build(pose entity.Pose) string {
	task := fmt.Sprintf("Regenerate the image, adjusting the subject's head to be %s.", Direction(pose))
	if pose.IsZero() {
		task = "Keep the subject's head facing forward exactly as it is. No change to the head pose is requested; reproduce the image faithfully."
	}

	return strings.Join([]string{
		"You are an expert AI photo editor. Your task is to regenerate the provided image, changing only the head pose of the main subject.",
		"",
		"Instructions:",
		"1. Analyze the original image to understand the subject's face, features, lighting, and background.",
		"2. " + task,
		"",
		"Strict rules:",
		"- Preserve identity: the subject's facial identity, features, hair, and expression must be perfectly preserved.",
		"- Maintain consistency: the background, clothing, lighting, shadows, and overall image style must remain identical.",
		"- Single change only: do not add, remove, or alter any other elements. Only the head pose may change.",
		"- Output: return only the final image. Do not output any text or markdown.",
	}, "\n")
}
