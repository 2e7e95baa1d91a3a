package syncer

// BuildIncrementalSteps splits one logical update into the three-step
// sequence that avoids a single large progress jump:
//
//  1. progress = previous progress + 1, nothing else
//  2. progress = target, nothing else
//  3. status, score, private, and volume progress, no chapter progress
//
// The orchestrator issues the steps as separate mutations; the step
// entries suppress diffing of fields they deliberately omit.
func BuildIncrementalSteps(entry UpdateEntry) []UpdateEntry {
	previousProgress := 0
	if entry.Previous != nil {
		previousProgress = entry.Previous.Progress
	}
	target := previousProgress
	if entry.Progress != nil {
		target = *entry.Progress
	}
	if entry.Metadata != nil && entry.Metadata.TargetProgress > 0 {
		target = entry.Metadata.TargetProgress
	}

	meta := func(step int) *Metadata {
		m := Metadata{
			UseIncrementalSync: true,
			Step:               step,
			TargetProgress:     target,
		}
		if entry.Metadata != nil {
			m.IsRetry = entry.Metadata.IsRetry
			m.RetryCount = entry.Metadata.RetryCount
		}
		return &m
	}

	first := UpdateEntry{
		MediaID:  entry.MediaID,
		Title:    entry.Title,
		Progress: Int(previousProgress + 1),
		Previous: entry.Previous,
		Metadata: meta(1),
	}
	second := UpdateEntry{
		MediaID:  entry.MediaID,
		Title:    entry.Title,
		Progress: Int(target),
		Metadata: meta(2),
	}
	third := UpdateEntry{
		MediaID:         entry.MediaID,
		Title:           entry.Title,
		Status:          entry.Status,
		ProgressVolumes: entry.ProgressVolumes,
		Score:           entry.Score,
		Private:         entry.Private,
		Previous:        entry.Previous,
		Metadata:        meta(3),
	}
	return []UpdateEntry{first, second, third}
}
