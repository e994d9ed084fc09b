package convert

import (
	"strings"

	"github.com/shirou/gopsutil/v3/process"
)

// killTree kills pid and every descendant. Children are collected before the
// parent dies so they are not reparented out of reach.
func killTree(pid int32) error {
	p, err := process.NewProcess(pid)
	if err != nil {
		return err
	}
	children, _ := p.Children()
	for _, c := range children {
		_ = killTree(c.Pid)
	}
	return p.Kill()
}

// killByName kills every process whose executable name matches one of names,
// case-insensitively. It returns the number of processes killed.
func killByName(names []string) int {
	if len(names) == 0 {
		return 0
	}
	procs, err := process.Processes()
	if err != nil {
		return 0
	}
	killed := 0
	for _, p := range procs {
		n, err := p.Name()
		if err != nil {
			continue
		}
		for _, want := range names {
			if strings.EqualFold(n, want) {
				if p.Kill() == nil {
					killed++
				}
				break
			}
		}
	}
	return killed
}
