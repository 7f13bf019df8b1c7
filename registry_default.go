//go:build !windows
// +build !windows

package winlog

// newPlatformRegistry reports that the live event log binding requires
// Windows. Sinks on other platforms need an explicit WithRegistry.
func newPlatformRegistry(machine string) (Registry, error) {
	return nil, ErrPlatformNotSupported
}
