package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// CheckWritable verifies dir exists and the process can create files in it.
func CheckWritable(dir string) Result {
	const name = "Output directory"
	info, err := os.Stat(dir)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s: %v", dir, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s is not a directory", dir)}
	}
	if err := unix.Access(dir, unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s not writable: %v", dir, err)}
	}
	return Result{Name: name, Passed: true, Detail: dir}
}

// CheckFreeSpace verifies the filesystem holding dir has at least minMiB free.
func CheckFreeSpace(dir string, minMiB int) Result {
	const name = "Free space"
	if minMiB <= 0 {
		return Result{Name: name, Passed: true, Detail: "check disabled"}
	}
	var stat unix.Statfs_t
	if err := unix.Statfs(dir, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("statfs %s: %v", dir, err)}
	}
	freeMiB := stat.Bavail * uint64(stat.Bsize) / (1 << 20)
	if freeMiB < uint64(minMiB) {
		return Result{
			Name:   name,
			Detail: fmt.Sprintf("%d MiB free on %s, need at least %d MiB", freeMiB, dir, minMiB),
		}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%d MiB free", freeMiB)}
}
