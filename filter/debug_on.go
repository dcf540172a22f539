//go:build filterdebug

package filter

const debugReadiness = true
