//go:build !resteposeclosest

package dcd

// restPoseClosestPointBuildEnabled mirrors the source's
// ENABLE_REST_POSE_CLOSEST_POINT compile-time toggle, disabled by
// default. Build with `-tags resteposeclosest` to enable it.
const restPoseClosestPointBuildEnabled = false
