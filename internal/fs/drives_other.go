//go:build !linux && !darwin && !windows

package fs

func listDrives() []Place {
	return []Place{{Name: "/", Path: "/", Kind: PlaceDrive}}
}
