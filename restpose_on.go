//go:build resteposeclosest

package dcd

// restPoseClosestPointBuildEnabled mirrors the source's
// ENABLE_REST_POSE_CLOSEST_POINT compile-time toggle: set it with
// `-tags resteposeclosest`.
const restPoseClosestPointBuildEnabled = true
