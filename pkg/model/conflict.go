package model

// IsSlotAvailable checks whether a lesson taught by teacher can be placed for group at the given day and time:
// - the group's cell must be empty
// - no other group may have a lesson with the same teacher at that day and time
func IsSlotAvailable(timetable *Timetable, group string, day Day, time TimeSlot, teacher string) bool {
	grid, ok := timetable.grids[group]
	if !ok || grid.IsOccupied(day, time) {
		return false
	}

	for _, other := range timetable.groups {
		if other == group {
			continue
		}
		if cell := timetable.grids[other].At(day, time); cell != nil && cell.Requirement.Teacher == teacher {
			return false
		}
	}
	return true
}
