package syncer

// buildVariables computes the minimal mutation payload for an update.
// With previous values present, only fields whose value changed are
// included; without them every set field goes out (first-time create).
// A score of exactly zero means unscored and is never sent.
func buildVariables(entry UpdateEntry, normalizeScores bool) map[string]any {
	vars := map[string]any{"mediaId": entry.MediaID}
	prev := entry.Previous

	if entry.Status != "" && (prev == nil || entry.Status != prev.Status) {
		vars["status"] = entry.Status
	}
	if entry.Progress != nil && (prev == nil || *entry.Progress != prev.Progress) {
		vars["progress"] = *entry.Progress
	}
	if entry.ProgressVolumes != nil {
		vars["progressVolumes"] = *entry.ProgressVolumes
	}
	if entry.Score != nil && *entry.Score != 0 && (prev == nil || *entry.Score != prev.Score) {
		score := *entry.Score
		if normalizeScores {
			score *= 10
		}
		vars["score"] = score
	}
	if entry.Private != nil && (prev == nil || *entry.Private != prev.Private) {
		vars["private"] = *entry.Private
	}
	return vars
}
