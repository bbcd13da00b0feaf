package catalog

// ComputeDeviceClosures resolves, for every machine index, the transitive
// set of device machines it pulls in through device_ref edges, excluding
// the machine itself. Resolution is memoized per index and guards against
// device_ref cycles: a machine re-entered while its own closure is still
// being computed contributes nothing further on that path.
//
// Order is deterministic: each direct device_ref in document order, followed
// immediately by its own closure before the next direct device_ref, skipping
// anything already seen.
func ComputeDeviceClosures(nc *NormalizedCatalog) map[int][]int {
	memo := make(map[int][]int, len(nc.Machines))
	inProgress := make(map[int]bool)
	result := make(map[int][]int, len(nc.Machines))
	for i := range nc.Machines {
		result[i] = deviceClosure(i, nc, memo, inProgress)
	}
	return result
}

func deviceClosure(idx int, nc *NormalizedCatalog, memo map[int][]int, inProgress map[int]bool) []int {
	if closure, ok := memo[idx]; ok {
		return closure
	}
	if inProgress[idx] {
		return nil
	}
	inProgress[idx] = true
	defer delete(inProgress, idx)

	seen := make(map[int]bool)
	var order []int
	for _, ref := range nc.Machines[idx].Record.DeviceRefs {
		devIdx, ok := nc.NameToIndex[ref]
		if !ok || devIdx == idx {
			continue
		}
		if !seen[devIdx] {
			seen[devIdx] = true
			order = append(order, devIdx)
		}
		for _, d := range deviceClosure(devIdx, nc, memo, inProgress) {
			if d == idx || seen[d] {
				continue
			}
			seen[d] = true
			order = append(order, d)
		}
	}

	memo[idx] = order
	return order
}
